package repository

import (
	"context"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"gorm.io/gorm"
)

// PlanningRouteRepository reads and writes the processing stage catalog.
type PlanningRouteRepository struct {
	db *gorm.DB
}

func NewPlanningRouteRepository(db *gorm.DB) *PlanningRouteRepository {
	return &PlanningRouteRepository{db: db}
}

func (r *PlanningRouteRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PlanningRoute, int64, error) {
	var items []entity.PlanningRoute
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PlanningRoute{})
	if search := filters["search"]; search != "" {
		query = query.Where("LOWER(planning_route_name) LIKE ?", likePattern(search))
	}
	if routeType := filters["planning_route_type"]; routeType != "" {
		query = query.Where("planning_route_type = ?", routeType)
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

func (r *PlanningRouteRepository) ListAll(ctx context.Context) ([]entity.PlanningRoute, error) {
	var items []entity.PlanningRoute
	err := r.db.WithContext(ctx).Order("planning_route_name ASC").Find(&items).Error
	return items, err
}

func (r *PlanningRouteRepository) FindByID(ctx context.Context, id string) (*entity.PlanningRoute, error) {
	var route entity.PlanningRoute
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&route).Error; err != nil {
		return nil, notFound(err)
	}
	return &route, nil
}

func (r *PlanningRouteRepository) FindByName(ctx context.Context, name string) (*entity.PlanningRoute, error) {
	var route entity.PlanningRoute
	err := r.db.WithContext(ctx).
		Where("LOWER(planning_route_name) = LOWER(?)", name).
		First(&route).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &route, nil
}

func (r *PlanningRouteRepository) Create(ctx context.Context, route *entity.PlanningRoute) error {
	return r.db.WithContext(ctx).Create(route).Error
}

func (r *PlanningRouteRepository) Update(ctx context.Context, route *entity.PlanningRoute) error {
	return r.db.WithContext(ctx).Save(route).Error
}

func (r *PlanningRouteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PlanningRoute{}).Error
}
