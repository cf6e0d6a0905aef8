package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/domain/shared"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new category repository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindActive retrieves all non-deleted categories ordered by name
func (r *GormCategoryRepository) FindActive(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// FindByIDActive retrieves a non-deleted category by ID
func (r *GormCategoryRepository) FindByIDActive(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by id: %w", err)
	}
	return &category, nil
}

// FindByNameActive retrieves a non-deleted category by exact name
func (r *GormCategoryRepository) FindByNameActive(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_deleted = ?", name, false).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	return &category, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// SoftDelete marks a category as deleted without removing the row
func (r *GormCategoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to soft delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
