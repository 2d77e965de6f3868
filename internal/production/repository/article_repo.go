package repository

import (
	"context"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleRepository reads and writes articles.
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindAll filters: status, article_no, fabric_type, search, created_by
func (r *ArticleRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Article, int64, error) {
	var items []entity.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Article{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if no := filters["article_no"]; no != "" {
		query = query.Where("LOWER(article_no) LIKE ?", likePattern(no))
	}
	if fabric := filters["fabric_type"]; fabric != "" {
		query = query.Where("fabric_type = ?", fabric)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("LOWER(article_name) LIKE ? OR LOWER(designer_name) LIKE ?",
			likePattern(search), likePattern(search))
	}
	if createdBy := filters["created_by"]; createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByStatus returns every article in the given status, newest first.
func (r *ArticleRepository) FindByStatus(ctx context.Context, status string) ([]entity.Article, error) {
	var items []entity.Article
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &article, nil
}

func (r *ArticleRepository) FindByArticleNo(ctx context.Context, articleNo string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).Where("article_no = ?", articleNo).First(&article).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &article, nil
}

func (r *ArticleRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Article{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *ArticleRepository) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(article).Error
}

func (r *ArticleRepository) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error
}

// UpdateStatus writes only the status column.
func (r *ArticleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Article{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Article{}).Error
}
