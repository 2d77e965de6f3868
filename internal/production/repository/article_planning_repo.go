package repository

import (
	"context"
	"time"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"gorm.io/gorm"
)

// ArticlePlanningRepository reads and writes article planning records.
type ArticlePlanningRepository struct {
	db *gorm.DB
}

func NewArticlePlanningRepository(db *gorm.DB) *ArticlePlanningRepository {
	return &ArticlePlanningRepository{db: db}
}

func (r *ArticlePlanningRepository) filtered(ctx context.Context, filters map[string]string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.ArticlePlanning{})

	if articleID := filters["article_id"]; articleID != "" {
		query = query.Where("article_id = ?", articleID)
	}
	if routeID := filters["planningRoute_id"]; routeID != "" {
		query = query.Where("planning_route_id = ?", routeID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if slip := filters["order_slip"]; slip != "" {
		query = query.Where("order_slip = ?", slip)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("LOWER(planning_name) LIKE ?", likePattern(search))
	}
	return query
}

// FindAll filters: article_id, planningRoute_id, status, order_slip, search
func (r *ArticlePlanningRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ArticlePlanning, int64, error) {
	var items []entity.ArticlePlanning
	var total int64

	query := r.filtered(ctx, filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Article").
		Preload("PlanningRoute").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindAllUnpaged returns every record matching filters, used by export.
func (r *ArticlePlanningRepository) FindAllUnpaged(ctx context.Context, filters map[string]string) ([]entity.ArticlePlanning, error) {
	var items []entity.ArticlePlanning
	err := r.filtered(ctx, filters).
		Preload("Article").
		Preload("PlanningRoute").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindStale returns the records matching filters, status aside, that
// read-time normalization may rewrite as of today. The date bounds are loose;
// callers decide per record.
func (r *ArticlePlanningRepository) FindStale(ctx context.Context, filters map[string]string, today time.Time) ([]entity.ArticlePlanning, error) {
	scoped := make(map[string]string, len(filters))
	for k, v := range filters {
		if k != "status" {
			scoped[k] = v
		}
	}

	var items []entity.ArticlePlanning
	err := r.filtered(ctx, scoped).
		Where(r.db.
			Where("status = ? AND when_process_start < ?", entity.PlanningStatusPending, today.AddDate(0, 0, 2)).
			Or("order_slip = ? AND status <> ?", entity.OrderSlipReceived, entity.PlanningStatusCompleted).
			Or("late = ? AND when_process_end < ?", false, today.AddDate(0, 0, 1))).
		Preload("Article").
		Preload("PlanningRoute").
		Find(&items).Error
	return items, err
}

func (r *ArticlePlanningRepository) FindByID(ctx context.Context, id string) (*entity.ArticlePlanning, error) {
	var planning entity.ArticlePlanning
	err := r.db.WithContext(ctx).
		Preload("Article").
		Preload("PlanningRoute").
		Where("id = ?", id).
		First(&planning).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &planning, nil
}

func (r *ArticlePlanningRepository) FindByArticleAndRoute(ctx context.Context, articleID, routeID string) (*entity.ArticlePlanning, error) {
	var planning entity.ArticlePlanning
	err := r.db.WithContext(ctx).
		Where("article_id = ? AND planning_route_id = ?", articleID, routeID).
		First(&planning).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &planning, nil
}

func (r *ArticlePlanningRepository) CountByArticle(ctx context.Context, articleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ArticlePlanning{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

func (r *ArticlePlanningRepository) CountByRoute(ctx context.Context, routeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ArticlePlanning{}).
		Where("planning_route_id = ?", routeID).
		Count(&count).Error
	return count, err
}

// CountOpenByArticle counts plannings of the article that are not Completed,
// leaving out excludeID.
func (r *ArticlePlanningRepository) CountOpenByArticle(ctx context.Context, articleID, excludeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ArticlePlanning{}).
		Where("article_id = ? AND id <> ? AND status <> ?", articleID, excludeID, entity.PlanningStatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *ArticlePlanningRepository) Create(ctx context.Context, planning *entity.ArticlePlanning) error {
	if planning.Version == 0 {
		planning.Version = 1
	}
	return r.db.WithContext(ctx).Omit("Article", "PlanningRoute").Create(planning).Error
}

// UpdateVersioned writes every mutable column guarded by the version the
// caller read. ErrVersionConflict means another writer got there first.
func (r *ArticlePlanningRepository) UpdateVersioned(ctx context.Context, planning *entity.ArticlePlanning) error {
	prev := planning.Version
	result := r.db.WithContext(ctx).
		Model(&entity.ArticlePlanning{}).
		Where("id = ? AND version = ?", planning.ID, prev).
		Updates(map[string]interface{}{
			"planning_name":      planning.PlanningName,
			"status":             planning.Status,
			"order_slip":         planning.OrderSlip,
			"total_payment":      planning.TotalPayment,
			"process_days":       planning.ProcessDays,
			"when_process_start": planning.WhenProcessStart,
			"when_process_end":   planning.WhenProcessEnd,
			"late":               planning.Late,
			"version":            prev + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	planning.Version = prev + 1
	return nil
}

// UpdateStatus writes only the status column, without a version check.
func (r *ArticlePlanningRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.ArticlePlanning{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ArticlePlanningRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ArticlePlanning{}).Error
}
