package services

import (
	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// ValidateImage applies the slot rules in order: format, size, dimensions.
// The first failing check wins and later checks are skipped.
// dims is nil when the payload could not be decoded.
func ValidateImage(slot domain.Slot, file *domain.File, dims *domain.Dimensions) *domain.ValidationError {
	if file.MediaType != domain.AllowedMediaType {
		return domain.FormatError()
	}

	if file.Size() > domain.MaxFileSizeBytes {
		return domain.SizeError()
	}

	// A declared PNG that does not decode is not a PNG
	if dims == nil {
		return domain.FormatError()
	}

	expected := slot.RequiredDimensions()
	if dims.Width != expected.Width || dims.Height != expected.Height {
		return domain.DimensionsError(expected)
	}

	return nil
}
