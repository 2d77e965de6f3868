package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a versioned write matched no row.
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// Repositories groups every table accessor over one gorm handle.
type Repositories struct {
	db *gorm.DB

	Article         *ArticleRepository
	Category        *CategoryRepository
	Client          *ClientRepository
	PlanningRoute   *PlanningRouteRepository
	ArticlePlanning *ArticlePlanningRepository
	ActivityLog     *ActivityLogRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:              db,
		Article:         NewArticleRepository(db),
		Category:        NewCategoryRepository(db),
		Client:          NewClientRepository(db),
		PlanningRoute:   NewPlanningRouteRepository(db),
		ArticlePlanning: NewArticlePlanningRepository(db),
		ActivityLog:     NewActivityLogRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single database
// transaction. Returning an error from fn rolls back every write made through tx.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// Ping checks the underlying connection pool.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
