package ports

import (
	"context"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

// ImageDecoder defines the port for measuring an image payload
type ImageDecoder interface {
	// DecodeDimensions returns the pixel size of the encoded image
	DecodeDimensions(ctx context.Context, data []byte) (domain.Dimensions, error)
}

// PreviewStore defines the port for ephemeral preview handles
type PreviewStore interface {
	// Create registers a payload for display and returns its token
	Create(ctx context.Context, slot domain.Slot, file *domain.File) (domain.PreviewToken, error)

	// Resolve returns a location usable for display (a path or URL)
	Resolve(token domain.PreviewToken) (string, error)

	// Revoke releases the handle; revoking an unknown token is not an error
	Revoke(token domain.PreviewToken) error
}

// FileSource defines the port for turning a user choice into a payload
type FileSource interface {
	// Load reads the file at path and declares its media type
	Load(ctx context.Context, path string) (*domain.File, error)
}

// ProductCatalog defines the port for the storefront's product data
type ProductCatalog interface {
	// ListProducts returns every product in catalog order
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// UserDirectory defines the port for the mock credential list
type UserDirectory interface {
	// Match reports whether the credentials belong to a known user
	Match(ctx context.Context, creds domain.LoginCredentials) (bool, error)
}
