package catalog

import (
	"context"

	"shopfront/internal/model"
)

// Client defines the product catalogue operations against the backend.
// Reads never mask a failed call as an empty result; a network or parse
// failure always comes back as an error.
type Client interface {
	// List retrieves the full product list.
	List(ctx context.Context) ([]model.Product, error)

	// ListByCategory retrieves products in the given category. An empty
	// category is equivalent to List.
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)

	// Search retrieves products matching a keyword.
	Search(ctx context.Context, keyword string) ([]model.Product, error)

	// Get retrieves a single product by its identifier.
	Get(ctx context.Context, id string) (*model.Product, error)

	// GetImage retrieves the product's image bytes and content type.
	GetImage(ctx context.Context, id string) ([]byte, string, error)

	// Create adds a new product with its image (multipart upload).
	Create(ctx context.Context, product model.Product, image Image) (*model.Product, error)

	// Update replaces an existing product and its image.
	Update(ctx context.Context, id string, product model.Product, image Image) (*model.Product, error)

	// DeleteProduct removes a product from the catalogue.
	DeleteProduct(ctx context.Context, id string) error
}

// Image is an uploadable product image.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
