package domain

import "fmt"

// ErrorKind classifies a validation failure
type ErrorKind string

const (
	KindFormat           ErrorKind = "format"
	KindSize             ErrorKind = "size"
	KindDimensions       ErrorKind = "dimensions"
	KindMissingOrInvalid ErrorKind = "missing-or-invalid"
)

// Validation messages shown next to the offending control
const (
	MessageFormat = "Only PNG files are allowed"
	MessageSize   = "File size must be less than 150KB"
)

// ValidationError describes why a file was rejected for a slot
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FormatError is the failure for any media type other than image/png
func FormatError() *ValidationError {
	return &ValidationError{Kind: KindFormat, Message: MessageFormat}
}

// SizeError is the failure for payloads above MaxFileSizeBytes
func SizeError() *ValidationError {
	return &ValidationError{Kind: KindSize, Message: MessageSize}
}

// DimensionsError names the dimensions that were expected
func DimensionsError(expected Dimensions) *ValidationError {
	return &ValidationError{
		Kind:    KindDimensions,
		Message: fmt.Sprintf("Image must be %dx%dpx", expected.Width, expected.Height),
	}
}

// File is a selected binary payload with the media type its source declared
type File struct {
	Name      string
	MediaType string
	Data      []byte

	// SourceSize is the length of the source when Data was cut short.
	// Zero means Data holds the whole file.
	SourceSize int64
}

// Size returns the length of the selected file in bytes, which is larger
// than Data when the source stopped reading early
func (f *File) Size() int64 {
	if n := int64(len(f.Data)); n >= f.SourceSize {
		return n
	}
	return f.SourceSize
}

// Truncated reports whether Data holds only the head of the file
func (f *File) Truncated() bool {
	return f.SourceSize > int64(len(f.Data))
}

// PreviewToken is an opaque, revocable handle used to display a selected file
type PreviewToken string

// Entry is the per-slot record of a selection.
// Entries are immutable once stored; a reselection replaces the whole entry.
type Entry struct {
	Slot       Slot
	File       *File
	Preview    PreviewToken
	Dimensions *Dimensions // nil when the payload could not be decoded
	Error      *ValidationError
}

// Valid reports whether the entry passed every check
func (e *Entry) Valid() bool {
	return e != nil && e.Error == nil
}

// StatusKind is the outcome of a submit attempt
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Submit messages
const (
	MessageSubmitSuccess = "Images validated successfully!"
	MessageSubmitInvalid = "Please ensure all images are selected and meet the requirements"
)

// SubmitStatus is the result of the most recent submit
type SubmitStatus struct {
	Kind    StatusKind `json:"status"`
	Message string     `json:"message"`
}

// Succeeded reports whether the submit passed
func (s SubmitStatus) Succeeded() bool {
	return s.Kind == StatusSuccess
}
