package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const routeCacheTTL = 10 * time.Minute

func routeCacheKey(id string) string {
	return "planning_route:" + id
}

// PlanningRouteService manages the processing stage catalog. Lookups by id go
// through Redis when a client is configured.
type PlanningRouteService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPlanningRouteService(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger) *PlanningRouteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningRouteService{repos: repos, rdb: rdb, logger: logger}
}

type CreatePlanningRouteRequest struct {
	PlanningRouteName string           `json:"planning_route_name"`
	PlanningRouteType string           `json:"planning_route_type"`
	CostPerMeter      *decimal.Decimal `json:"cost_per_meter"`
	LeadTimeDays      *int             `json:"lead_time_days"`
}

// UpdatePlanningRouteRequest only carries the mutable pricing fields.
type UpdatePlanningRouteRequest struct {
	CostPerMeter *decimal.Decimal `json:"cost_per_meter"`
	LeadTimeDays *int             `json:"lead_time_days"`
}

// PlanningRouteUpdatableFields lists the keys a PATCH may carry.
var PlanningRouteUpdatableFields = []string{"cost_per_meter", "lead_time_days"}

func (s *PlanningRouteService) Create(ctx context.Context, userID string, req *CreatePlanningRouteRequest) (*entity.PlanningRoute, error) {
	name := strings.TrimSpace(req.PlanningRouteName)
	if name == "" || req.PlanningRouteType == "" || req.CostPerMeter == nil {
		return nil, Validation("Please add all fields")
	}
	if n := len([]rune(name)); n < 2 || n > 50 {
		return nil, Validation("Planning route name must be between 2 and 50 characters")
	}
	if !entity.IsValid(entity.EnumRouteType, req.PlanningRouteType) {
		return nil, Validation("%s", entity.EnumError("Planning route type", req.PlanningRouteType, entity.EnumRouteType))
	}
	if req.CostPerMeter.IsNegative() {
		return nil, Validation("Cost per meter cannot be negative")
	}
	leadTime := 0
	if req.LeadTimeDays != nil {
		if *req.LeadTimeDays < 0 {
			return nil, Validation("Lead time days cannot be negative")
		}
		leadTime = *req.LeadTimeDays
	}

	if _, err := s.repos.PlanningRoute.FindByName(ctx, name); err == nil {
		return nil, Validation("Planning route already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Persistence(err)
	}

	route := &entity.PlanningRoute{
		ID:                uuid.New().String(),
		PlanningRouteName: name,
		PlanningRouteType: req.PlanningRouteType,
		CostPerMeter:      *req.CostPerMeter,
		LeadTimeDays:      leadTime,
		CreatedBy:         userID,
	}
	if err := s.repos.PlanningRoute.Create(ctx, route); err != nil {
		if repository.IsDuplicate(err) {
			return nil, Validation("Planning route already exists")
		}
		return nil, Persistence(err)
	}
	s.logger.Info("planning route created", zap.String("route_id", route.ID), zap.String("name", route.PlanningRouteName))
	return route, nil
}

func (s *PlanningRouteService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PlanningRoute, int64, error) {
	items, total, err := s.repos.PlanningRoute.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	return items, total, nil
}

func (s *PlanningRouteService) ListAll(ctx context.Context) ([]entity.PlanningRoute, error) {
	items, err := s.repos.PlanningRoute.ListAll(ctx)
	if err != nil {
		return nil, Persistence(err)
	}
	return items, nil
}

// Get returns the route, preferring the cache.
func (s *PlanningRouteService) Get(ctx context.Context, id string) (*entity.PlanningRoute, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid planning route id")
	}
	if route := s.cached(ctx, id); route != nil {
		return route, nil
	}
	route, err := s.repos.PlanningRoute.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Planning route not found")
	}
	s.store(ctx, route)
	return route, nil
}

func (s *PlanningRouteService) Update(ctx context.Context, id string, req *UpdatePlanningRouteRequest) (*entity.PlanningRoute, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid planning route id")
	}
	if req.LeadTimeDays != nil && *req.LeadTimeDays < 0 {
		return nil, Validation("Lead time days cannot be negative")
	}
	if req.CostPerMeter != nil && req.CostPerMeter.IsNegative() {
		return nil, Validation("Cost per meter cannot be negative")
	}

	route, err := s.repos.PlanningRoute.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Planning route not found")
	}
	if req.CostPerMeter != nil {
		route.CostPerMeter = *req.CostPerMeter
	}
	if req.LeadTimeDays != nil {
		route.LeadTimeDays = *req.LeadTimeDays
	}
	if err := s.repos.PlanningRoute.Update(ctx, route); err != nil {
		return nil, Persistence(err)
	}
	s.evict(ctx, id)
	return route, nil
}

// Delete refuses while any article planning still references the route.
func (s *PlanningRouteService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Validation("Invalid planning route id")
	}
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.PlanningRoute.FindByID(ctx, id); err != nil {
			return storeErr(err, "Planning route not found")
		}
		inUse, err := tx.ArticlePlanning.CountByRoute(ctx, id)
		if err != nil {
			return Persistence(err)
		}
		if inUse > 0 {
			return Conflict("Planning route is used by %d article planning record(s) and cannot be deleted", inUse)
		}
		if err := tx.PlanningRoute.Delete(ctx, id); err != nil {
			return Persistence(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

func (s *PlanningRouteService) cached(ctx context.Context, id string) *entity.PlanningRoute {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, routeCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("planning route cache read failed", zap.String("route_id", id), zap.Error(err))
		}
		return nil
	}
	var route entity.PlanningRoute
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil
	}
	return &route
}

func (s *PlanningRouteService) store(ctx context.Context, route *entity.PlanningRoute) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(route)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, routeCacheKey(route.ID), raw, routeCacheTTL).Err(); err != nil {
		s.logger.Warn("planning route cache write failed", zap.String("route_id", route.ID), zap.Error(err))
	}
}

func (s *PlanningRouteService) evict(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, routeCacheKey(id)).Err(); err != nil {
		s.logger.Warn("planning route cache evict failed", zap.String("route_id", id), zap.Error(err))
	}
}
