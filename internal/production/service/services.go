package service

import (
	"github.com/redis/go-redis/v9"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"go.uber.org/zap"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Name   string
	Roles  []string
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Services groups the production services.
type Services struct {
	Article         *ArticleService
	Category        *CategoryService
	Client          *ClientService
	PlanningRoute   *PlanningRouteService
	ArticlePlanning *ArticlePlanningService
}

// Deps are the collaborators shared by the services. Only Repos is required.
type Deps struct {
	Repos  *repository.Repositories
	Redis  *redis.Client
	Images ImageStore
	Events PlanningEvents
	Names  NameGenerator
	Clock  Clock
	Logger *zap.Logger
}

func NewServices(d Deps) *Services {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	routes := NewPlanningRouteService(d.Repos, d.Redis, logger.Named("planning_route"))
	return &Services{
		Article:         NewArticleService(d.Repos, d.Images, logger.Named("article")),
		Category:        NewCategoryService(d.Repos),
		Client:          NewClientService(d.Repos),
		PlanningRoute:   routes,
		ArticlePlanning: NewArticlePlanningService(d.Repos, routes, d.Names, d.Clock, d.Events, logger.Named("article_planning")),
	}
}
