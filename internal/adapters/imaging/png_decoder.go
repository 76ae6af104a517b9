package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// PNGDecoder reads dimensions from the PNG header without decoding pixels
type PNGDecoder struct{}

func NewPNGDecoder() *PNGDecoder {
	return &PNGDecoder{}
}

func (d *PNGDecoder) DecodeDimensions(ctx context.Context, data []byte) (domain.Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dimensions{}, err
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("failed to read png header: %w", err)
	}

	return domain.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
