package imaging

import (
	"context"
	"fmt"

	"github.com/h2non/bimg"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// VipsDecoder measures images through libvips. It accepts every format
// libvips understands, so the declared media type is what rejects non-PNGs.
type VipsDecoder struct{}

func NewVipsDecoder() *VipsDecoder {
	return &VipsDecoder{}
}

func (d *VipsDecoder) DecodeDimensions(ctx context.Context, data []byte) (domain.Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dimensions{}, err
	}

	size, err := bimg.NewImage(data).Size()
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("libvips could not read image: %w", err)
	}

	return domain.Dimensions{Width: size.Width, Height: size.Height}, nil
}
