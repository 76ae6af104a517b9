package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlots_Order(t *testing.T) {
	want := []Slot{SlotDesktop, SlotTablet, SlotMobile}
	if diff := cmp.Diff(want, Slots()); diff != "" {
		t.Errorf("Slots() mismatch (-want +got):\n%s", diff)
	}
}

func TestSlot_RequiredDimensions(t *testing.T) {
	tests := []struct {
		slot Slot
		want Dimensions
	}{
		{SlotDesktop, Dimensions{Width: 1280, Height: 300}},
		{SlotTablet, Dimensions{Width: 768, Height: 300}},
		{SlotMobile, Dimensions{Width: 320, Height: 150}},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			if got := tt.slot.RequiredDimensions(); got != tt.want {
				t.Errorf("RequiredDimensions() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    Slot
		wantErr bool
	}{
		{"desktop", SlotDesktop, false},
		{"  Tablet ", SlotTablet, false},
		{"MOBILE", SlotMobile, false},
		{"watch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSlot) {
					t.Fatalf("ParseSlot(%q) error = %v, want ErrUnknownSlot", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlot(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSlot(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDimensionsError_NamesExpectedSize(t *testing.T) {
	tests := []struct {
		slot Slot
		want string
	}{
		{SlotDesktop, "Image must be 1280x300px"},
		{SlotTablet, "Image must be 768x300px"},
		{SlotMobile, "Image must be 320x150px"},
	}

	for _, tt := range tests {
		got := DimensionsError(tt.slot.RequiredDimensions())
		if got.Kind != KindDimensions {
			t.Errorf("%s: kind = %q, want %q", tt.slot, got.Kind, KindDimensions)
		}
		if got.Message != tt.want {
			t.Errorf("%s: message = %q, want %q", tt.slot, got.Message, tt.want)
		}
	}
}

func TestResponsivePreview_Select(t *testing.T) {
	p := ResponsivePreview{
		Sources: []PreviewSource{
			{Slot: SlotDesktop, MinViewportWidth: SlotDesktop.MinViewportWidth(), Token: "d"},
			{Slot: SlotTablet, MinViewportWidth: SlotTablet.MinViewportWidth(), Token: "t"},
		},
		Fallback: PreviewSource{Slot: SlotMobile, Token: "m"},
	}

	tests := []struct {
		width int
		want  Slot
	}{
		{1920, SlotDesktop},
		{1024, SlotDesktop},
		{1023, SlotTablet},
		{768, SlotTablet},
		{767, SlotMobile},
		{0, SlotMobile},
	}

	for _, tt := range tests {
		if got := p.Select(tt.width).Slot; got != tt.want {
			t.Errorf("Select(%d) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestProduct_OnPromotion(t *testing.T) {
	promo := int64(999)
	zero := int64(0)

	if (Product{Price: 1299}).OnPromotion() {
		t.Error("product without promotion price reported as on promotion")
	}
	if (Product{Price: 1299, PromotionPrice: &zero}).OnPromotion() {
		t.Error("zero promotion price should not count")
	}
	if !(Product{Price: 1299, PromotionPrice: &promo}).OnPromotion() {
		t.Error("expected product to be on promotion")
	}
}

func TestFile_SizeReportsSourceLength(t *testing.T) {
	whole := &File{Data: make([]byte, 10)}
	if whole.Truncated() || whole.Size() != 10 {
		t.Errorf("complete file: Truncated() = %v, Size() = %d", whole.Truncated(), whole.Size())
	}

	head := &File{Data: make([]byte, 11), SourceSize: 2 << 20}
	if !head.Truncated() {
		t.Error("expected file with larger source to be truncated")
	}
	if got := head.Size(); got != 2<<20 {
		t.Errorf("Size() = %d, want %d", got, 2<<20)
	}
}
