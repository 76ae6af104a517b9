package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

func TestValidateImage_FirstFailureWins(t *testing.T) {
	desktop := domain.SlotDesktop.RequiredDimensions()
	wrong := domain.Dimensions{Width: 10, Height: 10}

	tests := []struct {
		name      string
		mediaType string
		size      int
		dims      *domain.Dimensions
		want      domain.ErrorKind
	}{
		{"jpeg beats size and dimensions", "image/jpeg", 200 * 1024, &wrong, domain.KindFormat},
		{"media type must match exactly", "image/PNG", 10, &desktop, domain.KindFormat},
		{"media type with parameters is rejected", "image/png; charset=binary", 10, &desktop, domain.KindFormat},
		{"size beats dimensions", domain.AllowedMediaType, 153601, &wrong, domain.KindSize},
		{"dimensions", domain.AllowedMediaType, 1024, &wrong, domain.KindDimensions},
		{"undecodable", domain.AllowedMediaType, 1024, nil, domain.KindFormat},
		{"valid", domain.AllowedMediaType, 1024, &desktop, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &domain.File{Name: "x.png", MediaType: tt.mediaType, Data: make([]byte, tt.size)}
			got := ValidateImage(domain.SlotDesktop, file, tt.dims)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, got.Kind)
			}
		})
	}
}

func TestValidateImage_NoAspectRatioTolerance(t *testing.T) {
	// Same 128:30 ratio at double size is still rejected
	file := &domain.File{MediaType: domain.AllowedMediaType, Data: make([]byte, 10)}
	got := ValidateImage(domain.SlotDesktop, file, &domain.Dimensions{Width: 2560, Height: 600})

	if assert.NotNil(t, got) {
		assert.Equal(t, "Image must be 1280x300px", got.Message)
	}
}
