package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eshop/models"
)

// MockCategoryRepository is an in-memory CategoryRepository for tests.
type MockCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.RWMutex

	ForcedErr error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{categories: make(map[string]models.Category)}
}

func (r *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := []models.Category{}
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MockCategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	category.ID = primitive.NewObjectID()
	r.categories[category.ID.Hex()] = *category
	return category, nil
}

func (r *MockCategoryRepository) UpdateByID(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	if r.ForcedErr != nil {
		return nil, r.ForcedErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	category.ID = existing.ID
	r.categories[id] = *category
	return category, nil
}

func (r *MockCategoryRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	if r.ForcedErr != nil {
		return false, r.ForcedErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return false, nil
	}
	delete(r.categories, id)
	return true, nil
}
