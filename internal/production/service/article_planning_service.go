package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PlanningEvents receives committed planning transitions.
type PlanningEvents interface {
	PublishPlanningUpdate(planningID, articleID, action string)
}

// ArticlePlanningService drives the planning lifecycle and keeps the linked
// article's status consistent with it.
type ArticlePlanningService struct {
	repos  *repository.Repositories
	routes *PlanningRouteService
	names  NameGenerator
	clock  Clock
	events PlanningEvents
	logger *zap.Logger
}

func NewArticlePlanningService(
	repos *repository.Repositories,
	routes *PlanningRouteService,
	names NameGenerator,
	clock Clock,
	events PlanningEvents,
	logger *zap.Logger,
) *ArticlePlanningService {
	if clock == nil {
		clock = time.Now
	}
	if names == nil {
		names = NewRandomNameGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticlePlanningService{
		repos:  repos,
		routes: routes,
		names:  names,
		clock:  clock,
		events: events,
		logger: logger,
	}
}

type CreatePlanningRequest struct {
	ArticleID        string           `json:"article_id"`
	PlanningRouteID  string           `json:"planningRoute_id"`
	TotalPayment     *decimal.Decimal `json:"total_payment"`
	WhenProcessEnd   string           `json:"when_process_end"`
	WhenProcessStart string           `json:"when_process_start"`
}

// UpdatePlanningRequest is a partial update; nil fields are left alone.
type UpdatePlanningRequest struct {
	OrderSlip        *string          `json:"order_slip"`
	Status           *string          `json:"status"`
	TotalPayment     *decimal.Decimal `json:"total_payment"`
	WhenProcessEnd   *string          `json:"when_process_end"`
	WhenProcessStart *string          `json:"when_process_start"`
	PlanningName     *string          `json:"planningName"`
}

func (r *UpdatePlanningRequest) empty() bool {
	return r.OrderSlip == nil && r.Status == nil && r.TotalPayment == nil &&
		r.WhenProcessEnd == nil && r.WhenProcessStart == nil && r.PlanningName == nil
}

var minPayment = decimal.NewFromInt(1)

// Create assigns an article to a planning route.
func (s *ArticlePlanningService) Create(ctx context.Context, userID string, req *CreatePlanningRequest) (*entity.ArticlePlanning, error) {
	now := s.clock()
	loc := now.Location()

	var missing []string
	if req.ArticleID == "" {
		missing = append(missing, "article_id")
	}
	if req.PlanningRouteID == "" {
		missing = append(missing, "planningRoute_id")
	}
	if req.TotalPayment == nil {
		missing = append(missing, "total_payment")
	}
	if strings.TrimSpace(req.WhenProcessEnd) == "" {
		missing = append(missing, "when_process_end")
	}
	if len(missing) > 0 {
		return nil, Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}

	if _, err := uuid.Parse(req.ArticleID); err != nil {
		return nil, Validation("Invalid article id")
	}
	if _, err := uuid.Parse(req.PlanningRouteID); err != nil {
		return nil, Validation("Invalid planning route id")
	}

	end, err := ParseDate(req.WhenProcessEnd, loc)
	if err != nil {
		return nil, Validation("Process end date %v", err)
	}
	var start time.Time
	hasStart := strings.TrimSpace(req.WhenProcessStart) != ""
	if hasStart {
		if start, err = ParseDate(req.WhenProcessStart, loc); err != nil {
			return nil, Validation("Process start date %v", err)
		}
	}

	article, err := s.repos.Article.FindByID(ctx, req.ArticleID)
	if err != nil {
		return nil, storeErr(err, "Article not found")
	}
	if !article.ActiveStatus {
		return nil, Validation("Article is inactive and cannot be planned")
	}
	route, err := s.routes.Get(ctx, req.PlanningRouteID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.ArticlePlanning.FindByArticleAndRoute(ctx, article.ID, route.ID); err == nil {
		return nil, Validation("Article already assigned to planning Phase")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Persistence(err)
	}

	if req.TotalPayment.LessThan(minPayment) {
		return nil, Validation("Total payment must be greater than 0")
	}
	if !end.After(now) {
		return nil, Validation("Process end date must be greater than today's date")
	}
	today := DateOnly(now, loc)
	if hasStart {
		if DateOnly(start, loc).Before(today) {
			return nil, Validation("Process start date must not be in the past, leave it empty to start today")
		}
		if !start.Before(end) {
			return nil, Validation("Process start date must be before process end date")
		}
	}

	processDays, ok := DaysUntil(now, req.WhenProcessEnd)
	if !ok {
		return nil, Validation("Process end date must be in YYYY-MM-DD format")
	}

	planning := &entity.ArticlePlanning{
		ID:               uuid.New().String(),
		ArticleID:        article.ID,
		PlanningRouteID:  route.ID,
		PlanningName:     s.names.PlanningName(),
		Status:           entity.PlanningStatusInProgress,
		OrderSlip:        entity.OrderSlipIssued,
		TotalPayment:     *req.TotalPayment,
		ProcessDays:      processDays,
		WhenProcessStart: now,
		WhenProcessEnd:   end,
		Version:          1,
		CreatedBy:        userID,
	}
	if hasStart {
		planning.WhenProcessStart = start
		if DateOnly(start, loc).After(today) {
			planning.Status = entity.PlanningStatusPending
		}
	}

	prevArticleStatus := article.Status
	err = s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if err := tx.ArticlePlanning.Create(ctx, planning); err != nil {
			if repository.IsDuplicate(err) {
				return Validation("Article already assigned to planning Phase")
			}
			return Persistence(err)
		}
		if article.Status != entity.ArticleStatusUnderProcess {
			if err := tx.Article.UpdateStatus(ctx, article.ID, entity.ArticleStatusUnderProcess); err != nil {
				return Persistence(err)
			}
			article.Status = entity.ArticleStatusUnderProcess
		}
		return s.logActivity(ctx, tx, planning, entity.ActionCreate, "", planning.Status, userID,
			fmt.Sprintf("assigned article %s to route %s", article.ArticleNo, route.PlanningRouteName))
	})
	if err != nil {
		article.Status = prevArticleStatus
		return nil, err
	}

	planning.Article = article
	planning.PlanningRoute = route
	s.committed(planning, entity.ActionCreate)
	return planning, nil
}

// Get returns one record after read-time normalization.
func (s *ArticlePlanningService) Get(ctx context.Context, id string) (*entity.ArticlePlanning, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article planning id")
	}
	planning, err := s.repos.ArticlePlanning.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Article planning not found")
	}
	return s.normalize(ctx, planning)
}

// List returns one page of records, each normalized. Stale candidates are
// normalized before the filtered query runs, so the filters and the total
// see the normalized state.
func (s *ArticlePlanningService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.ArticlePlanning, int64, error) {
	if err := s.sweep(ctx, filters); err != nil {
		return nil, 0, err
	}
	items, total, err := s.repos.ArticlePlanning.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	for i := range items {
		normalized, err := s.normalize(ctx, &items[i])
		if err != nil {
			return nil, 0, err
		}
		items[i] = *normalized
	}
	return items, total, nil
}

// sweep normalizes every record under filters whose stored status may be out
// of date.
func (s *ArticlePlanningService) sweep(ctx context.Context, filters map[string]string) error {
	now := s.clock()
	stale, err := s.repos.ArticlePlanning.FindStale(ctx, filters, DateOnly(now, now.Location()))
	if err != nil {
		return Persistence(err)
	}
	for i := range stale {
		if _, err := s.normalize(ctx, &stale[i]); err != nil {
			return err
		}
	}
	return nil
}

// normalize persists any change normalizePlanning makes, together with the
// article cascade, in one transaction.
func (s *ArticlePlanningService) normalize(ctx context.Context, planning *entity.ArticlePlanning) (*entity.ArticlePlanning, error) {
	articleStatus := ""
	if planning.Article != nil {
		articleStatus = planning.Article.Status
	}

	next := *planning
	prevStatus := planning.Status
	changed, articleTarget := normalizePlanning(&next, articleStatus, s.clock())
	articleTarget = cascadeTarget(planning.Article, articleTarget)
	if !changed && articleTarget == "" {
		return planning, nil
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if changed {
			if err := tx.ArticlePlanning.UpdateVersioned(ctx, &next); err != nil {
				return err
			}
		}
		if articleTarget != "" {
			if err := tx.Article.UpdateStatus(ctx, next.ArticleID, articleTarget); err != nil {
				return err
			}
		}
		return s.logActivity(ctx, tx, &next, entity.ActionNormalize, prevStatus, next.Status, "", "")
	})
	if errors.Is(err, repository.ErrVersionConflict) {
		// a concurrent writer won; serve its state, the next read normalizes it
		s.logger.Warn("planning normalization lost a version race", zap.String("planning_id", planning.ID))
		reloaded, err := s.repos.ArticlePlanning.FindByID(ctx, planning.ID)
		if err != nil {
			return nil, storeErr(err, "Article planning not found")
		}
		return reloaded, nil
	}
	if err != nil {
		return nil, storeErr(err, "Article planning not found")
	}

	if articleTarget != "" && next.Article != nil {
		article := *next.Article
		article.Status = articleTarget
		next.Article = &article
	}
	s.committed(&next, entity.ActionNormalize)
	return &next, nil
}

// Update applies a partial update with the order-slip cascade.
func (s *ArticlePlanningService) Update(ctx context.Context, id, userID string, req *UpdatePlanningRequest) (*entity.ArticlePlanning, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article planning id")
	}
	if req.empty() {
		return nil, Validation("At least one of order_slip, status, total_payment, when_process_end, when_process_start, planningName must be provided")
	}

	now := s.clock()
	loc := now.Location()
	today := DateOnly(now, loc)

	if req.OrderSlip != nil && !entity.IsValid(entity.EnumOrderSlip, *req.OrderSlip) {
		return nil, Validation("%s", entity.EnumError("Order slip", *req.OrderSlip, entity.EnumOrderSlip))
	}
	if req.Status != nil && !entity.IsValid(entity.EnumPlanningStatus, *req.Status) {
		return nil, Validation("%s", entity.EnumError("Status", *req.Status, entity.EnumPlanningStatus))
	}
	if req.TotalPayment != nil && req.TotalPayment.LessThan(minPayment) {
		return nil, Validation("Total payment must be greater than 0")
	}
	var end, start time.Time
	if req.WhenProcessEnd != nil {
		var err error
		if end, err = ParseDate(*req.WhenProcessEnd, loc); err != nil {
			return nil, Validation("Process end date %v", err)
		}
		if !end.After(now) {
			return nil, Validation("Process end date must be greater than today's date")
		}
	}
	if req.WhenProcessStart != nil {
		var err error
		if start, err = ParseDate(*req.WhenProcessStart, loc); err != nil {
			return nil, Validation("Process start date %v", err)
		}
		if DateOnly(start, loc).Before(today) {
			return nil, Validation("Process start date must not be in the past")
		}
	}
	var name string
	if req.PlanningName != nil {
		name = strings.TrimSpace(*req.PlanningName)
		if len([]rune(name)) < 3 {
			return nil, Validation("Planning name must be at least 3 characters")
		}
	}

	var result *entity.ArticlePlanning
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planning, err := tx.ArticlePlanning.FindByID(ctx, id)
		if err != nil {
			return storeErr(err, "Article planning not found")
		}
		articleStatus := ""
		if planning.Article != nil {
			articleStatus = planning.Article.Status
		}
		prevStatus := planning.Status

		if req.WhenProcessEnd != nil {
			planning.WhenProcessEnd = end
		}
		if req.WhenProcessStart != nil {
			planning.WhenProcessStart = start
		}
		if (req.WhenProcessEnd != nil || req.WhenProcessStart != nil) && !planning.WhenProcessStart.Before(planning.WhenProcessEnd) {
			return Validation("Process start date must be before process end date")
		}

		if req.Status != nil {
			planning.Status = *req.Status
		}
		if req.TotalPayment != nil {
			planning.TotalPayment = *req.TotalPayment
		}
		if req.PlanningName != nil {
			planning.PlanningName = name
		}
		articleTarget := ""
		if req.OrderSlip != nil {
			articleTarget = cascadeTarget(planning.Article, applyOrderSlip(planning, *req.OrderSlip, prevStatus, articleStatus))
		}
		if req.WhenProcessEnd != nil || req.WhenProcessStart != nil {
			deriveSchedule(planning, now)
		}

		if err := tx.ArticlePlanning.UpdateVersioned(ctx, planning); err != nil {
			return storeErr(err, "Article planning not found")
		}
		if articleTarget != "" {
			if err := tx.Article.UpdateStatus(ctx, planning.ArticleID, articleTarget); err != nil {
				return Persistence(err)
			}
			if planning.Article != nil {
				planning.Article.Status = articleTarget
			}
		}
		if err := s.logActivity(ctx, tx, planning, entity.ActionUpdate, prevStatus, planning.Status, userID, updatedFields(req)); err != nil {
			return err
		}
		result = planning
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(result, entity.ActionUpdate)
	return result, nil
}

// UpdateOrderSlip changes only the order slip. Setting the current value is a conflict.
func (s *ArticlePlanningService) UpdateOrderSlip(ctx context.Context, id, userID, slip string) (*entity.ArticlePlanning, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article planning id")
	}
	if slip == "" {
		return nil, Validation("Order slip is required")
	}
	if !entity.IsValid(entity.EnumOrderSlip, slip) {
		return nil, Validation("%s", entity.EnumError("Order slip", slip, entity.EnumOrderSlip))
	}

	var result *entity.ArticlePlanning
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planning, err := tx.ArticlePlanning.FindByID(ctx, id)
		if err != nil {
			return storeErr(err, "Article planning not found")
		}
		if planning.OrderSlip == slip {
			return Conflict("Order slip is already %s", slip)
		}
		articleStatus := ""
		if planning.Article != nil {
			articleStatus = planning.Article.Status
		}
		prevStatus := planning.Status
		prevSlip := planning.OrderSlip

		articleTarget := cascadeTarget(planning.Article, applyOrderSlip(planning, slip, prevStatus, articleStatus))
		if err := tx.ArticlePlanning.UpdateVersioned(ctx, planning); err != nil {
			return storeErr(err, "Article planning not found")
		}
		if articleTarget != "" {
			if err := tx.Article.UpdateStatus(ctx, planning.ArticleID, articleTarget); err != nil {
				return Persistence(err)
			}
			if planning.Article != nil {
				planning.Article.Status = articleTarget
			}
		}
		if err := s.logActivity(ctx, tx, planning, entity.ActionOrderSlipChange, prevStatus, planning.Status, userID,
			fmt.Sprintf("order slip %s -> %s", prevSlip, slip)); err != nil {
			return err
		}
		result = planning
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(result, entity.ActionOrderSlipChange)
	return result, nil
}

// UpdateStatus overwrites the status column only. It is an administrative
// override: the linked article is not touched and no version check applies.
func (s *ArticlePlanningService) UpdateStatus(ctx context.Context, id, userID, status string) (*entity.ArticlePlanning, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article planning id")
	}
	if status == "" {
		return nil, Validation("Status is required")
	}
	if !entity.IsValid(entity.EnumPlanningStatus, status) {
		return nil, Validation("%s", entity.EnumError("Status", status, entity.EnumPlanningStatus))
	}

	planning, err := s.repos.ArticlePlanning.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Article planning not found")
	}
	prevStatus := planning.Status
	if err := s.repos.ArticlePlanning.UpdateStatus(ctx, id, status); err != nil {
		return nil, storeErr(err, "Article planning not found")
	}
	planning.Status = status

	if err := s.logActivity(ctx, s.repos, planning, entity.ActionStatusChange, prevStatus, status, userID, "status override"); err != nil {
		s.logger.Warn("activity log write failed", zap.String("planning_id", id), zap.Error(err))
	}
	s.committed(planning, entity.ActionStatusChange)
	return planning, nil
}

// Delete removes the record. The article reverts to raw when it was under
// process and no other open planning holds it there.
func (s *ArticlePlanningService) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Validation("Invalid article planning id")
	}

	var deleted *entity.ArticlePlanning
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		planning, err := tx.ArticlePlanning.FindByID(ctx, id)
		if err != nil {
			return storeErr(err, "Article planning not found")
		}
		if err := tx.ArticlePlanning.Delete(ctx, id); err != nil {
			return Persistence(err)
		}
		if planning.Article != nil && planning.Article.ActiveStatus && planning.Article.Status == entity.ArticleStatusUnderProcess {
			open, err := tx.ArticlePlanning.CountOpenByArticle(ctx, planning.ArticleID, planning.ID)
			if err != nil {
				return Persistence(err)
			}
			if open == 0 {
				if err := tx.Article.UpdateStatus(ctx, planning.ArticleID, entity.ArticleStatusRaw); err != nil {
					return Persistence(err)
				}
			}
		}
		if err := s.logActivity(ctx, tx, planning, entity.ActionDelete, planning.Status, "", userID, ""); err != nil {
			return err
		}
		deleted = planning
		return nil
	})
	if err != nil {
		return err
	}

	s.committed(deleted, entity.ActionDelete)
	return nil
}

// Activities returns the audit trail of one record.
func (s *ArticlePlanningService) Activities(ctx context.Context, id string, page, pageSize int) ([]entity.ActivityLog, int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, 0, Validation("Invalid article planning id")
	}
	items, total, err := s.repos.ActivityLog.FindByEntity(ctx, entity.EntityTypeArticlePlanning, id, page, pageSize)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	return items, total, nil
}

func (s *ArticlePlanningService) logActivity(ctx context.Context, tx *repository.Repositories, p *entity.ArticlePlanning, action, from, to, operatorID, content string) error {
	if err := tx.ActivityLog.LogActivity(ctx, entity.EntityTypeArticlePlanning, p.ID, p.PlanningName,
		action, from, to, content, operatorID); err != nil {
		return Persistence(err)
	}
	return nil
}

func (s *ArticlePlanningService) committed(p *entity.ArticlePlanning, action string) {
	s.logger.Info("article planning committed",
		zap.String("planning_id", p.ID),
		zap.String("article_id", p.ArticleID),
		zap.String("action", action),
		zap.String("status", p.Status),
		zap.String("order_slip", p.OrderSlip))
	if s.events != nil {
		s.events.PublishPlanningUpdate(p.ID, p.ArticleID, action)
	}
}

// cascadeTarget drops an article status change when the article is
// inactive. An inactive article stays finished.
func cascadeTarget(article *entity.Article, target string) string {
	if article != nil && !article.ActiveStatus {
		return ""
	}
	return target
}

func updatedFields(req *UpdatePlanningRequest) string {
	var fields []string
	if req.OrderSlip != nil {
		fields = append(fields, "order_slip")
	}
	if req.Status != nil {
		fields = append(fields, "status")
	}
	if req.TotalPayment != nil {
		fields = append(fields, "total_payment")
	}
	if req.WhenProcessEnd != nil {
		fields = append(fields, "when_process_end")
	}
	if req.WhenProcessStart != nil {
		fields = append(fields, "when_process_start")
	}
	if req.PlanningName != nil {
		fields = append(fields, "planningName")
	}
	return "updated " + strings.Join(fields, ", ")
}
