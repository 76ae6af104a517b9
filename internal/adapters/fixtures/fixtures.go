package fixtures

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
)

//go:embed data/products.json
var productsJSON []byte

//go:embed data/users.json
var usersJSON []byte

// Catalog serves products from a static JSON document
type Catalog struct {
	raw []byte
}

// NewCatalog uses the built-in product fixture
func NewCatalog() *Catalog {
	return &Catalog{raw: productsJSON}
}

// NewCatalogFromJSON uses a caller-supplied product array
func NewCatalogFromJSON(raw []byte) *Catalog {
	return &Catalog{raw: raw}
}

// ListProducts decodes the fixture. Anything other than a JSON array
// yields an empty catalog.
func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(c.raw, &products); err != nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

type userRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Users is the static credential list behind the mock login
type Users struct {
	users []userRecord
}

// NewUsers loads the built-in user fixture
func NewUsers() (*Users, error) {
	return NewUsersFromJSON(usersJSON)
}

// NewUsersFromJSON parses a {"users": [...]} document
func NewUsersFromJSON(raw []byte) (*Users, error) {
	var doc struct {
		Users []userRecord `json:"users"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse users fixture: %w", err)
	}
	return &Users{users: doc.Users}, nil
}

func (u *Users) Match(ctx context.Context, creds domain.LoginCredentials) (bool, error) {
	for _, rec := range u.users {
		if rec.Username == creds.Username && rec.Password == creds.Password {
			return true, nil
		}
	}
	return false, nil
}
