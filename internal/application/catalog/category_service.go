package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/domain/shared"
)

// CategoryService manages the locally owned category set. Categories
// never involve peer services.
type CategoryService struct {
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	logger     *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categories catalog.CategoryRepository, products catalog.ProductRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
		logger:     logger.Named("category_service"),
	}
}

// List returns all active categories.
func (s *CategoryService) List(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categories.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{ID: c.ID, Name: c.Name})
	}
	return views, nil
}

// Get returns one active category, or nil when absent.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryView, error) {
	category, err := s.categories.FindByIDActive(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

// Create adds a new category. The name must be unique among active
// categories; a soft-deleted category frees its name for reuse.
func (s *CategoryService) Create(ctx context.Context, name string) (*CategoryView, error) {
	if existing, err := s.categories.FindByNameActive(ctx, name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	category, err := catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

// Update renames a category, rejecting a name held by another active
// category. Returns nil when the category does not exist.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*CategoryView, error) {
	category, err := s.categories.FindByIDActive(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if existing, err := s.categories.FindByNameActive(ctx, name); err == nil && existing != nil && existing.ID != id {
		return nil, shared.ErrAlreadyExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

// Delete soft-deletes a category. A category still referenced by at
// least one product cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.categories.FindByIDActive(ctx, id); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, shared.ErrValidationConflict
	}

	if err := s.categories.SoftDelete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}
