package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop/models"
)

// MockProductRepository is an in-memory ProductRepository used by handler
// tests. ForcedErr, when set, makes every operation fail with it.
type MockProductRepository struct {
	products   map[string]models.Product
	categories *MockCategoryRepository
	mu         sync.RWMutex

	ForcedErr error
}

func NewMockProductRepository(categories *MockCategoryRepository) *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[string]models.Product),
		categories: categories,
	}
}

func (r *MockProductRepository) List(ctx context.Context, categoryIDs []string) ([]models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := map[string]bool{}
	for _, raw := range categoryIDs {
		if _, err := primitive.ObjectIDFromHex(raw); err != nil {
			return nil, fmt.Errorf("invalid category id %q", raw)
		}
		wanted[raw] = true
	}

	products := []models.Product{}
	for _, p := range r.products {
		if len(wanted) > 0 && !wanted[p.CategoryID.Hex()] {
			continue
		}
		r.attachCategory(&p)
		products = append(products, p)
	}
	return products, nil
}

func (r *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.attachCategory(&p)
	return &p, nil
}

func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = primitive.NewObjectID()
	product.DateCreated = time.Now()
	if product.Images == nil {
		product.Images = []string{}
	}
	r.products[product.ID.Hex()] = *product

	p := *product
	r.attachCategory(&p)
	return &p, nil
}

func (r *MockProductRepository) UpdateByID(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	product.ID = existing.ID
	product.Images = existing.Images
	product.DateCreated = existing.DateCreated
	r.products[id] = *product

	p := *product
	r.attachCategory(&p)
	return &p, nil
}

func (r *MockProductRepository) SetImages(ctx context.Context, id string, images []string) (*models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if images == nil {
		images = []string{}
	}
	existing.Images = images
	r.products[id] = existing

	p := existing
	r.attachCategory(&p)
	return &p, nil
}

func (r *MockProductRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if r.ForcedErr != nil {
		return false, r.ForcedErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *MockProductRepository) Count(ctx context.Context) (int64, error) {
	if r.ForcedErr != nil {
		return 0, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *MockProductRepository) ListFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []models.Product{}
	for _, p := range r.products {
		if !p.IsFeatured {
			continue
		}
		products = append(products, p)
		if limit > 0 && int64(len(products)) == limit {
			break
		}
	}
	return products, nil
}

func (r *MockProductRepository) attachCategory(p *models.Product) {
	if r.categories == nil || p.CategoryID.IsZero() {
		return
	}
	if c, err := r.categories.GetByID(context.Background(), p.CategoryID.Hex()); err == nil {
		p.Category = c
	}
}
