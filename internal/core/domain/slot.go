package domain

import (
	"fmt"
	"strings"
)

// Slot identifies one of the fixed breakpoint image positions
type Slot string

const (
	SlotDesktop Slot = "desktop"
	SlotTablet  Slot = "tablet"
	SlotMobile  Slot = "mobile"
)

// Upload constraints shared by every slot
const (
	AllowedMediaType = "image/png"
	MaxFileSizeBytes = int64(150 * 1024) // 150KB
)

// Dimensions is a pixel width/height pair
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// String renders dimensions as WIDTHxHEIGHT
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// slotSpec holds the immutable rules for a slot
type slotSpec struct {
	dimensions       Dimensions
	minViewportWidth int
}

var slotSpecs = map[Slot]slotSpec{
	SlotDesktop: {dimensions: Dimensions{Width: 1280, Height: 300}, minViewportWidth: 1024},
	SlotTablet:  {dimensions: Dimensions{Width: 768, Height: 300}, minViewportWidth: 768},
	SlotMobile:  {dimensions: Dimensions{Width: 320, Height: 150}, minViewportWidth: 0},
}

// Slots returns every slot, widest breakpoint first
func Slots() []Slot {
	return []Slot{SlotDesktop, SlotTablet, SlotMobile}
}

// ParseSlot converts user input into a Slot
func ParseSlot(s string) (Slot, error) {
	slot := Slot(strings.ToLower(strings.TrimSpace(s)))
	if !slot.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
	}
	return slot, nil
}

// Valid reports whether s is one of the fixed slots
func (s Slot) Valid() bool {
	_, ok := slotSpecs[s]
	return ok
}

// RequiredDimensions returns the exact pixel size an image for this slot must have
func (s Slot) RequiredDimensions() Dimensions {
	return slotSpecs[s].dimensions
}

// MinViewportWidth is the narrowest viewport at which this slot's image is preferred.
// Zero marks the fallback slot.
func (s Slot) MinViewportWidth() int {
	return slotSpecs[s].minViewportWidth
}

// Label returns a capitalised name for display
func (s Slot) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
