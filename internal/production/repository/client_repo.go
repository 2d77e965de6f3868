package repository

import (
	"context"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Client, int64, error) {
	var items []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{})
	if search := filters["search"]; search != "" {
		query = query.Where("LOWER(client_name) LIKE ? OR LOWER(client_email) LIKE ?",
			likePattern(search), likePattern(search))
	}
	if city := filters["client_city"]; city != "" {
		query = query.Where("LOWER(client_city) = LOWER(?)", city)
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

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*entity.Client, error) {
	var client entity.Client
	if err := r.db.WithContext(ctx).Where("client_email = ?", email).First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}
