package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/sarakts28/febric-flow-backend/internal/production/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	planningID, articleID, action string
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) PublishPlanningUpdate(planningID, articleID, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{planningID, articleID, action})
}

func (r *eventRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.action
	}
	return out
}

type planningFixture struct {
	db      *gorm.DB
	svc     *ArticlePlanningService
	events  *eventRecorder
	article *entity.Article
	route   *entity.PlanningRoute
}

func newPlanningFixture(t *testing.T) *planningFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	events := &eventRecorder{}
	services := NewServices(Deps{
		Repos:  repository.NewRepositories(db),
		Names:  NewSequenceNameGenerator(1001),
		Clock:  testutil.FixedClock,
		Events: events,
	})
	category := testutil.SeedCategory(t, db, "Lawn")
	return &planningFixture{
		db:      db,
		svc:     services.ArticlePlanning,
		events:  events,
		article: testutil.SeedArticle(t, db, category.ID, "ART-001", entity.ArticleStatusRaw),
		route:   testutil.SeedRoute(t, db, "Dyeing A"),
	}
}

func (f *planningFixture) request(end, start string) *CreatePlanningRequest {
	payment := decimal.NewFromInt(5000)
	return &CreatePlanningRequest{
		ArticleID:        f.article.ID,
		PlanningRouteID:  f.route.ID,
		TotalPayment:     &payment,
		WhenProcessEnd:   end,
		WhenProcessStart: start,
	}
}

func (f *planningFixture) articleStatus(t *testing.T, id string) string {
	t.Helper()
	var a entity.Article
	testutil.Reload(t, f.db, &a, id)
	return a.Status
}

func (f *planningFixture) stored(t *testing.T, id string) entity.ArticlePlanning {
	t.Helper()
	var p entity.ArticlePlanning
	testutil.Reload(t, f.db, &p, id)
	return p
}

func (f *planningFixture) activityCount(t *testing.T, id string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entity.ActivityLog{}).Where("entity_id = ?", id).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

// failInsertsInto makes every insert into table fail.
func failInsertsInto(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("injected failure"))
		}
	})
	require.NoError(t, err)
}

func TestCreatePlanning_InProgressWithoutStart(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	assert.Equal(t, entity.PlanningStatusInProgress, p.Status)
	assert.Equal(t, entity.OrderSlipIssued, p.OrderSlip)
	assert.Equal(t, "PL-1001", p.PlanningName)
	assert.Equal(t, 7, p.ProcessDays)
	assert.False(t, p.Late)
	assert.True(t, p.WhenProcessStart.Equal(testutil.Now))
	assert.Equal(t, 1, p.Version)

	assert.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))
	assert.EqualValues(t, 1, f.activityCount(t, p.ID))
	assert.Equal(t, []string{entity.ActionCreate}, f.events.actions())
}

func TestCreatePlanning_StatusFromStartDate(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	future, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), testutil.Day(2)))
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusPending, future.Status)

	other := testutil.SeedRoute(t, f.db, "Printing B")
	req := f.request(testutil.Day(7), testutil.Day(0))
	req.PlanningRouteID = other.ID
	today, err := f.svc.Create(ctx, "admin-001", req)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusInProgress, today.Status)
}

func TestCreatePlanning_Validation(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()
	zero := decimal.Zero

	cases := []struct {
		name   string
		mutate func(r *CreatePlanningRequest)
		kind   ErrorKind
		msg    string
	}{
		{"missing fields", func(r *CreatePlanningRequest) { r.ArticleID = ""; r.TotalPayment = nil },
			KindValidation, "Missing required fields: article_id, total_payment"},
		{"bad article id", func(r *CreatePlanningRequest) { r.ArticleID = "abc" },
			KindValidation, "Invalid article id"},
		{"slash date", func(r *CreatePlanningRequest) { r.WhenProcessEnd = "2026/03/20" },
			KindValidation, "Process end date must be in YYYY-MM-DD format"},
		{"unknown article", func(r *CreatePlanningRequest) { r.ArticleID = "6f1f2d4e-0000-4000-8000-000000000000" },
			KindNotFound, "Article not found"},
		{"unknown route", func(r *CreatePlanningRequest) { r.PlanningRouteID = "6f1f2d4e-0000-4000-8000-000000000001" },
			KindNotFound, "Planning route not found"},
		{"zero payment", func(r *CreatePlanningRequest) { r.TotalPayment = &zero },
			KindValidation, "Total payment must be greater than 0"},
		{"end today", func(r *CreatePlanningRequest) { r.WhenProcessEnd = testutil.Day(0) },
			KindValidation, "Process end date must be greater than today's date"},
		{"start in the past", func(r *CreatePlanningRequest) { r.WhenProcessStart = testutil.Day(-1) },
			KindValidation, "Process start date must not be in the past, leave it empty to start today"},
		{"start after end", func(r *CreatePlanningRequest) { r.WhenProcessStart = testutil.Day(9) },
			KindValidation, "Process start date must be before process end date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.request(testutil.Day(7), "")
			tc.mutate(req)
			_, err := f.svc.Create(ctx, "admin-001", req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
			var se *Error
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tc.msg, se.Message)
		})
	}

	assert.Equal(t, entity.ArticleStatusRaw, f.articleStatus(t, f.article.ID), "failed creates leave the article alone")
	assert.Empty(t, f.events.actions())
}

func TestCreatePlanning_DuplicatePair(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "admin-001", f.request(testutil.Day(9), ""))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "Article already assigned to planning Phase")

	var n int64
	f.db.Model(&entity.ArticlePlanning{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestCreatePlanning_RollsBackOnLogFailure(t *testing.T) {
	f := newPlanningFixture(t)
	failInsertsInto(t, f.db, "activity_logs")

	_, err := f.svc.Create(context.Background(), "admin-001", f.request(testutil.Day(7), ""))
	require.Error(t, err)
	assert.Equal(t, KindPersistence, KindOf(err))

	var n int64
	f.db.Model(&entity.ArticlePlanning{}).Count(&n)
	assert.Zero(t, n)
	assert.Equal(t, entity.ArticleStatusRaw, f.articleStatus(t, f.article.ID))
	assert.Empty(t, f.events.actions())
}

func TestUpdateOrderSlip_ReceivedCascade(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	updated, err := f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipReceived)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusCompleted, updated.Status)
	assert.Equal(t, entity.OrderSlipReceived, updated.OrderSlip)
	assert.Equal(t, 2, updated.Version)

	stored := f.stored(t, p.ID)
	assert.Equal(t, entity.PlanningStatusCompleted, stored.Status)
	assert.Equal(t, entity.ArticleStatusCompleted, f.articleStatus(t, f.article.ID))
}

func TestUpdateOrderSlip_ReceivedCascadeIsAtomic(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	failInsertsInto(t, f.db, "activity_logs")
	_, err = f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipReceived)
	require.Error(t, err)

	stored := f.stored(t, p.ID)
	assert.Equal(t, entity.OrderSlipIssued, stored.OrderSlip)
	assert.Equal(t, entity.PlanningStatusInProgress, stored.Status)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))
}

func TestUpdateOrderSlip_ReissueCascade(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipReceived)
	require.NoError(t, err)

	reissued, err := f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipIssued)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusInProgress, reissued.Status)
	assert.Equal(t, entity.OrderSlipIssued, reissued.OrderSlip)
	assert.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))
}

func TestUpdateOrderSlip_NoopIsConflict(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipIssued)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 1, f.stored(t, p.ID).Version)

	_, err = f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", "Lost")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestUpdatePlanning(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	t.Run("empty update fails", func(t *testing.T) {
		_, err := f.svc.Update(ctx, p.ID, "admin-001", &UpdatePlanningRequest{})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("short name fails", func(t *testing.T) {
		_, err := f.svc.Update(ctx, p.ID, "admin-001", &UpdatePlanningRequest{PlanningName: strPtr("ab")})
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("start not before stored end fails", func(t *testing.T) {
		_, err := f.svc.Update(ctx, p.ID, "admin-001", &UpdatePlanningRequest{WhenProcessStart: strPtr(testutil.Day(8))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Process start date must be before process end date")
	})

	t.Run("new end recomputes schedule", func(t *testing.T) {
		payment := decimal.NewFromInt(7500)
		updated, err := f.svc.Update(ctx, p.ID, "admin-001", &UpdatePlanningRequest{
			WhenProcessEnd: strPtr(testutil.Day(3)),
			TotalPayment:   &payment,
			PlanningName:   strPtr("Summer dye run"),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.ProcessDays)
		assert.Equal(t, "Summer dye run", updated.PlanningName)
		assert.True(t, updated.TotalPayment.Equal(payment))

		stored := f.stored(t, p.ID)
		assert.Equal(t, 3, stored.ProcessDays)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("received through update cascades", func(t *testing.T) {
		updated, err := f.svc.Update(ctx, p.ID, "admin-001", &UpdatePlanningRequest{OrderSlip: strPtr(entity.OrderSlipReceived)})
		require.NoError(t, err)
		assert.Equal(t, entity.PlanningStatusCompleted, updated.Status)
		assert.Equal(t, entity.ArticleStatusCompleted, f.articleStatus(t, f.article.ID))
	})
}

func TestUpdateStatus_DoesNotCascade(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, p.ID, "admin-001", entity.PlanningStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusCompleted, updated.Status)

	stored := f.stored(t, p.ID)
	assert.Equal(t, entity.PlanningStatusCompleted, stored.Status)
	assert.Equal(t, entity.OrderSlipIssued, stored.OrderSlip)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))

	_, err = f.svc.UpdateStatus(ctx, p.ID, "admin-001", "Done")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestGetPlanning_NormalizesOnce(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	testutil.Reload(t, f.db, f.article, f.article.ID)
	require.NoError(t, f.db.Model(f.article).Update("status", entity.ArticleStatusUnderProcess).Error)
	seeded := testutil.SeedPlanning(t, f.db, f.article.ID, f.route.ID, testutil.PlanningSeed{
		Status:    entity.PlanningStatusPending,
		OrderSlip: entity.OrderSlipReceived,
		Start:     testutil.Date(-4),
		End:       testutil.Date(-1),
	})

	got, err := f.svc.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusCompleted, got.Status)
	assert.True(t, got.Late)
	assert.Equal(t, entity.ArticleStatusCompleted, got.Article.Status)
	assert.Equal(t, entity.ArticleStatusCompleted, f.articleStatus(t, f.article.ID))
	assert.EqualValues(t, 1, f.activityCount(t, seeded.ID))

	again, err := f.svc.Get(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Status, again.Status)
	assert.Equal(t, got.Late, again.Late)
	assert.Equal(t, got.Version, again.Version)
	assert.EqualValues(t, 1, f.activityCount(t, seeded.ID), "second read writes nothing")
}

func TestGetPlanning_NotFound(t *testing.T) {
	f := newPlanningFixture(t)

	_, err := f.svc.Get(context.Background(), "6f1f2d4e-0000-4000-8000-000000000009")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.Get(context.Background(), "nope")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDeletePlanning_RevertsSoleDependency(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)
	require.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))

	require.NoError(t, f.svc.Delete(ctx, p.ID, "admin-001"))
	assert.Equal(t, entity.ArticleStatusRaw, f.articleStatus(t, f.article.ID))

	err = f.svc.Delete(ctx, p.ID, "admin-001")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeletePlanning_KeepsArticleWithOtherOpenPlanning(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	second := testutil.SeedRoute(t, f.db, "Embroidery C")
	req := f.request(testutil.Day(10), "")
	req.PlanningRouteID = second.ID
	_, err = f.svc.Create(ctx, "admin-001", req)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, first.ID, "admin-001"))
	assert.Equal(t, entity.ArticleStatusUnderProcess, f.articleStatus(t, f.article.ID))
}

func TestDeletePlanning_CompletedSiblingDoesNotHoldArticle(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	second := testutil.SeedRoute(t, f.db, "Embroidery C")
	testutil.SeedPlanning(t, f.db, f.article.ID, second.ID, testutil.PlanningSeed{
		Status:    entity.PlanningStatusCompleted,
		OrderSlip: entity.OrderSlipReceived,
	})

	require.NoError(t, f.svc.Delete(ctx, first.ID, "admin-001"))
	assert.Equal(t, entity.ArticleStatusRaw, f.articleStatus(t, f.article.ID))
}

func TestListPlanning_Filters(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	done, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderSlip(ctx, done.ID, "admin-001", entity.OrderSlipReceived)
	require.NoError(t, err)

	other := testutil.SeedRoute(t, f.db, "Printing B")
	req := f.request(testutil.Day(7), "")
	req.PlanningRouteID = other.ID
	_, err = f.svc.Create(ctx, "admin-001", req)
	require.NoError(t, err)

	items, total, err := f.svc.List(ctx, 1, 10, map[string]string{
		"status":     entity.PlanningStatusCompleted,
		"order_slip": entity.OrderSlipReceived,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, done.ID, items[0].ID)
	require.NotNil(t, items[0].PlanningRoute)
	assert.Equal(t, "Dyeing A", items[0].PlanningRoute.PlanningRouteName)

	items, total, err = f.svc.List(ctx, 1, 10, map[string]string{"search": "pl-1002"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "PL-1002", items[0].PlanningName)

	_, total, err = f.svc.List(ctx, 1, 10, map[string]string{"planningRoute_id": other.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestListPlanning_FiltersSeeNormalizedStatus(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	startsToday := testutil.SeedPlanning(t, f.db, f.article.ID, f.route.ID, testutil.PlanningSeed{
		Status: entity.PlanningStatusPending,
		Start:  testutil.Date(0),
	})
	other := testutil.SeedRoute(t, f.db, "Printing B")
	overridden := testutil.SeedPlanning(t, f.db, f.article.ID, other.ID, testutil.PlanningSeed{
		Status:    entity.PlanningStatusInProgress,
		OrderSlip: entity.OrderSlipReceived,
	})

	items, total, err := f.svc.List(ctx, 1, 10, map[string]string{"status": entity.PlanningStatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, items)

	items, total, err = f.svc.List(ctx, 1, 10, map[string]string{"status": entity.PlanningStatusInProgress})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, startsToday.ID, items[0].ID)
	assert.Equal(t, entity.PlanningStatusInProgress, items[0].Status)

	items, total, err = f.svc.List(ctx, 1, 10, map[string]string{
		"status":     entity.PlanningStatusCompleted,
		"order_slip": entity.OrderSlipReceived,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, overridden.ID, items[0].ID)
	assert.Equal(t, entity.PlanningStatusCompleted, f.stored(t, overridden.ID).Status)
}

func deactivate(t *testing.T, f *planningFixture) {
	t.Helper()
	err := f.db.Model(&entity.Article{}).Where("id = ?", f.article.ID).
		Updates(map[string]interface{}{"status": entity.ArticleStatusFinished, "active_status": false}).Error
	require.NoError(t, err)
}

func TestCreatePlanning_RejectsInactiveArticle(t *testing.T) {
	f := newPlanningFixture(t)
	deactivate(t, f)

	_, err := f.svc.Create(context.Background(), "admin-001", f.request(testutil.Day(7), ""))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "Article is inactive and cannot be planned")
	assert.Equal(t, entity.ArticleStatusFinished, f.articleStatus(t, f.article.ID))

	var n int64
	f.db.Model(&entity.ArticlePlanning{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func TestUpdateOrderSlip_ReissueLeavesInactiveArticle(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p := testutil.SeedPlanning(t, f.db, f.article.ID, f.route.ID, testutil.PlanningSeed{
		Status:    entity.PlanningStatusCompleted,
		OrderSlip: entity.OrderSlipReceived,
	})
	deactivate(t, f)

	updated, err := f.svc.UpdateOrderSlip(ctx, p.ID, "admin-001", entity.OrderSlipIssued)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanningStatusInProgress, updated.Status)
	assert.Equal(t, entity.ArticleStatusFinished, f.articleStatus(t, f.article.ID))

	require.NoError(t, f.svc.Delete(ctx, p.ID, "admin-001"))
	assert.Equal(t, entity.ArticleStatusFinished, f.articleStatus(t, f.article.ID))
}

func TestActivities(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)
	_, err = f.svc.UpdateOrderSlip(ctx, p.ID, "designer-001", entity.OrderSlipReceived)
	require.NoError(t, err)

	items, total, err := f.svc.Activities(ctx, p.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	actions := []string{items[0].Action, items[1].Action}
	assert.ElementsMatch(t, []string{entity.ActionCreate, entity.ActionOrderSlipChange}, actions)
}

func TestExport(t *testing.T) {
	f := newPlanningFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "admin-001", f.request(testutil.Day(7), ""))
	require.NoError(t, err)

	file, name, err := f.svc.Export(ctx, nil)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, "article_planning_20260310.xlsx", name)
	rows, err := file.GetRows("Planning")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExportHeaders(), rows[0])
	assert.Equal(t, "PL-1001", rows[1][0])
	assert.Equal(t, "ART-001", rows[1][1])
}
