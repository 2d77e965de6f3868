package repository

import (
	"context"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// FindAll matches search against name or season.
func (r *CategoryRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Category, int64, error) {
	var items []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})
	if search := filters["search"]; search != "" {
		query = query.Where("LOWER(category_name) LIKE ? OR LOWER(category_season) LIKE ?",
			likePattern(search), likePattern(search))
	}
	if season := filters["category_season"]; season != "" {
		query = query.Where("category_season = ?", season)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]entity.Category, error) {
	var items []entity.Category
	err := r.db.WithContext(ctx).Order("category_name ASC").Find(&items).Error
	return items, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// FindByName compares case-insensitively.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(category_name) = LOWER(?)", name).
		First(&category).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Category{}).Error
}
