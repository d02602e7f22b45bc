package repositories

import (
	"context"
	"errors"

	"eshop/models"
)

// ErrNotFound is returned when a document does not exist, or when a lookup
// id is malformed and therefore cannot match anything.
var ErrNotFound = errors.New("document not found")

// ProductRepository is the storage adapter for products. Implementations
// resolve the category reference on documents they return, except for the
// featured listing which keeps the raw reference.
type ProductRepository interface {
	// List returns products, restricted to the given category ids when the
	// slice is non-empty. No matches is an empty slice, not an error.
	List(ctx context.Context, categoryIDs []string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	// UpdateByID replaces every product field and returns the post-update
	// document. Callers validate the id with IsValidID first.
	UpdateByID(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	// SetImages replaces the whole gallery, it never appends.
	SetImages(ctx context.Context, id string, images []string) (*models.Product, error)
	// DeleteByID reports whether a document was found and removed.
	DeleteByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	// ListFeatured returns featured products, capped at limit when limit > 0.
	ListFeatured(ctx context.Context, limit int64) ([]models.Product, error)
}

// CategoryRepository is the storage adapter for categories. Product writes
// use GetByID as an existence check before touching the products collection.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateByID(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
