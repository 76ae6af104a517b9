package imaging

import (
	"fmt"
	"strings"

	"github.com/kamal-hamza/storefront-cli/internal/core/ports"
)

// Decoder names accepted in configuration
const (
	DecoderNative = "native"
	DecoderVips   = "vips"
)

// New returns the decoder registered under name
func New(name string) (ports.ImageDecoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DecoderNative:
		return NewPNGDecoder(), nil
	case DecoderVips:
		return NewVipsDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown image decoder %q (valid: %s, %s)", name, DecoderNative, DecoderVips)
	}
}
