package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/sarakts28/febric-flow-backend/internal/production/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryImageStore struct {
	saved map[string][]byte
}

func (m *memoryImageStore) Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[objectName] = data
	return "/uploads/" + objectName, nil
}

func newCatalog(t *testing.T) (*gorm.DB, *Services, *memoryImageStore) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	images := &memoryImageStore{}
	svc := NewServices(Deps{
		Repos:  repository.NewRepositories(db),
		Images: images,
		Names:  NewSequenceNameGenerator(1001),
		Clock:  testutil.FixedClock,
	})
	return db, svc, images
}

func intPtr(n int) *int { return &n }

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

var designerActor = Actor{UserID: "designer-001", Name: "Hina", Roles: []string{entity.RoleDesigner}}

func articleRequest(categoryID, no string) *CreateArticleRequest {
	return &CreateArticleRequest{
		ArticleNo:          no,
		ArticleName:        "Printed lawn three piece",
		ArticleDescription: "Digital print with embroidered neckline",
		CategoryID:         categoryID,
		FabricType:         entity.FabricUnstitch,
		MeasurementType:    entity.MeasurementMeter,
		TotalQuantity:      intPtr(120),
		Price:              decPtr(3200),
	}
}

func TestArticleCreate(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")

	article, err := svc.Article.Create(ctx, designerActor, articleRequest(category.ID, "LW-100"))
	require.NoError(t, err)
	assert.Equal(t, entity.ArticleStatusRaw, article.Status)
	assert.True(t, article.ActiveStatus)
	assert.Equal(t, "Hina", article.DesignerName, "designer name defaults to the caller")
	assert.Equal(t, "designer-001", article.CreatedBy)

	_, err = svc.Article.Create(ctx, designerActor, articleRequest(category.ID, "LW-100"))
	require.Error(t, err)
	assert.Equal(t, "Article with this number already exists LW-100", err.Error())

	req := articleRequest(category.ID, "LW-101")
	req.FabricType = "woven"
	_, err = svc.Article.Create(ctx, designerActor, req)
	assert.Equal(t, "Fabric type 'woven' is invalid. Allowed values: stitch, unstitch", err.Error())

	req = articleRequest("6f1f2d4e-0000-4000-8000-000000000000", "LW-102")
	_, err = svc.Article.Create(ctx, designerActor, req)
	assert.Equal(t, "Invalid Category ID", err.Error())

	req = articleRequest(category.ID, "LW-103")
	req.ArticleImages = []entity.ArticleImage{{URL: "ftp://example.com/a.png"}}
	_, err = svc.Article.Create(ctx, designerActor, req)
	assert.Equal(t, KindValidation, KindOf(err))

	req = articleRequest(category.ID, strings.Repeat("X", 51))
	_, err = svc.Article.Create(ctx, designerActor, req)
	assert.Equal(t, "Article number cannot exceed 50 characters", err.Error())

	req = articleRequest(category.ID, "LW-104")
	req.TotalQuantity = nil
	req.ArticleName = ""
	_, err = svc.Article.Create(ctx, designerActor, req)
	assert.Equal(t, "Missing required fields: article_name, total_quantity", err.Error())
}

func TestArticleList_DesignerSeesOwnArticles(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")

	testutil.SeedArticle(t, db, category.ID, "A-1", entity.ArticleStatusRaw) // created by designer-001
	other := testutil.SeedArticle(t, db, category.ID, "A-2", entity.ArticleStatusRaw)
	require.NoError(t, db.Model(other).Update("created_by", "designer-002").Error)

	_, total, err := svc.Article.List(ctx, designerActor, 1, 10, map[string]string{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	admin := Actor{UserID: "admin-001", Roles: []string{entity.RoleAdmin}}
	items, total, err := svc.Article.List(ctx, admin, 1, 10, map[string]string{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Lawn", items[0].Category.CategoryName)

	_, total, err = svc.Article.List(ctx, admin, 1, 10, map[string]string{"article_no": "a-2"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestArticleUpdate(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")
	article := testutil.SeedArticle(t, db, category.ID, "A-1", entity.ArticleStatusRaw)

	inactive := false
	_, err := svc.Article.Update(ctx, article.ID, &UpdateArticleRequest{ActiveStatus: &inactive})
	require.Error(t, err)
	assert.Equal(t, "Article status must be finished because active status is false", err.Error())

	finished := entity.ArticleStatusFinished
	updated, err := svc.Article.Update(ctx, article.ID, &UpdateArticleRequest{
		ActiveStatus:        &inactive,
		Status:              &finished,
		TotalStoresAssigned: intPtr(4),
	})
	require.NoError(t, err)
	assert.False(t, updated.ActiveStatus)

	var stored entity.Article
	testutil.Reload(t, db, &stored, article.ID)
	assert.Equal(t, entity.ArticleStatusFinished, stored.Status)
	assert.Equal(t, 4, stored.TotalStoresAssigned)
}

func TestArticleAddImages(t *testing.T) {
	db, svc, images := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")
	article := testutil.SeedArticle(t, db, category.ID, "A-1", entity.ArticleStatusRaw)

	uploads := []ImageUpload{
		{Filename: "front.PNG", ContentType: "image/png", Size: 3, Body: bytes.NewReader([]byte("one"))},
		{Filename: "back.jpg", ContentType: "image/jpeg", Size: 3, Body: bytes.NewReader([]byte("two"))},
	}
	updated, err := svc.Article.AddImages(ctx, article.ID, uploads)
	require.NoError(t, err)
	require.Len(t, updated.ArticleImages, 2)
	assert.True(t, updated.ArticleImages[0].IsPrimary)
	assert.False(t, updated.ArticleImages[1].IsPrimary)
	assert.True(t, strings.HasSuffix(updated.ArticleImages[0].URL, ".png"))
	assert.Len(t, images.saved, 2)

	var stored entity.Article
	testutil.Reload(t, db, &stored, article.ID)
	assert.Len(t, stored.ArticleImages, 2)

	_, err = svc.Article.AddImages(ctx, article.ID, nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestArticleDelete_RestrictedByPlanning(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")
	article := testutil.SeedArticle(t, db, category.ID, "A-1", entity.ArticleStatusUnderProcess)
	route := testutil.SeedRoute(t, db, "Dyeing A")
	planning := testutil.SeedPlanning(t, db, article.ID, route.ID, testutil.PlanningSeed{})

	err := svc.Article.Delete(ctx, article.ID)
	assert.Equal(t, KindConflict, KindOf(err))

	require.NoError(t, db.Delete(&entity.ArticlePlanning{}, "id = ?", planning.ID).Error)
	require.NoError(t, svc.Article.Delete(ctx, article.ID))

	_, err = svc.Article.Get(ctx, article.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPlanningRouteCreate(t *testing.T) {
	_, svc, _ := newCatalog(t)
	ctx := context.Background()

	route, err := svc.PlanningRoute.Create(ctx, "admin-001", &CreatePlanningRouteRequest{
		PlanningRouteName: "Dyeing A",
		PlanningRouteType: entity.RouteTypeDyeing,
		CostPerMeter:      decPtr(35),
		LeadTimeDays:      intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, route.LeadTimeDays)

	cases := []struct {
		name string
		req  *CreatePlanningRouteRequest
		msg  string
	}{
		{"missing cost", &CreatePlanningRouteRequest{PlanningRouteName: "X1", PlanningRouteType: entity.RouteTypeDyeing},
			"Please add all fields"},
		{"short name", &CreatePlanningRouteRequest{PlanningRouteName: "X", PlanningRouteType: entity.RouteTypeDyeing, CostPerMeter: decPtr(1)},
			"Planning route name must be between 2 and 50 characters"},
		{"bad type", &CreatePlanningRouteRequest{PlanningRouteName: "Wash", PlanningRouteType: "washing", CostPerMeter: decPtr(1)},
			"Planning route type 'washing' is invalid. Allowed values: dyeing, printing, embroidery"},
		{"negative cost", &CreatePlanningRouteRequest{PlanningRouteName: "Print", PlanningRouteType: entity.RouteTypePrinting, CostPerMeter: decPtr(-1)},
			"Cost per meter cannot be negative"},
		{"duplicate", &CreatePlanningRouteRequest{PlanningRouteName: "Dyeing A", PlanningRouteType: entity.RouteTypeDyeing, CostPerMeter: decPtr(1)},
			"Planning route already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlanningRoute.Create(ctx, "admin-001", tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestPlanningRouteUpdateAndDelete(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()
	category := testutil.SeedCategory(t, db, "Lawn")
	article := testutil.SeedArticle(t, db, category.ID, "A-1", entity.ArticleStatusUnderProcess)
	route := testutil.SeedRoute(t, db, "Dyeing A")

	updated, err := svc.PlanningRoute.Update(ctx, route.ID, &UpdatePlanningRouteRequest{LeadTimeDays: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.LeadTimeDays)
	assert.True(t, updated.CostPerMeter.Equal(decimal.NewFromInt(40)))

	_, err = svc.PlanningRoute.Update(ctx, route.ID, &UpdatePlanningRouteRequest{LeadTimeDays: intPtr(-1)})
	assert.Equal(t, KindValidation, KindOf(err))

	testutil.SeedPlanning(t, db, article.ID, route.ID, testutil.PlanningSeed{})
	err = svc.PlanningRoute.Delete(ctx, route.ID)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "Planning route is used by 1 article planning record(s) and cannot be deleted", err.Error())

	unused := testutil.SeedRoute(t, db, "Printing B")
	require.NoError(t, svc.PlanningRoute.Delete(ctx, unused.ID))
	_, err = svc.PlanningRoute.Get(ctx, unused.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCategoryService(t *testing.T) {
	db, svc, _ := newCatalog(t)
	ctx := context.Background()

	category, err := svc.Category.Create(ctx, "admin-001", &CreateCategoryRequest{CategoryName: "Khaddar", CategorySeason: entity.SeasonWinter})
	require.NoError(t, err)

	_, err = svc.Category.Create(ctx, "admin-001", &CreateCategoryRequest{CategoryName: "khaddar", CategorySeason: entity.SeasonWinter})
	assert.Equal(t, "Category already exists", err.Error())

	_, err = svc.Category.Create(ctx, "admin-001", &CreateCategoryRequest{CategoryName: "Silk", CategorySeason: "Monsoon"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Category.Create(ctx, "admin-001", &CreateCategoryRequest{CategoryName: "Silk"})
	assert.Equal(t, "Category name and season are required", err.Error())

	_, total, err := svc.Category.List(ctx, 1, 10, map[string]string{"search": "wint"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	testutil.SeedArticle(t, db, category.ID, "K-1", entity.ArticleStatusRaw)
	err = svc.Category.Delete(ctx, category.ID)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestClientService(t *testing.T) {
	_, svc, _ := newCatalog(t)
	ctx := context.Background()

	client, err := svc.Client.Create(ctx, "admin-001", &CreateClientRequest{
		ClientName:  "Ayesha O'Neil",
		ClientEmail: "  Ayesha@Example.com ",
		ClientCity:  "Lahore",
	})
	require.NoError(t, err)
	assert.Equal(t, "ayesha@example.com", client.ClientEmail)

	_, err = svc.Client.Create(ctx, "admin-001", &CreateClientRequest{ClientName: "Other", ClientEmail: "AYESHA@example.com"})
	assert.Equal(t, "Client already exists", err.Error())

	_, err = svc.Client.Create(ctx, "admin-001", &CreateClientRequest{ClientName: "R2D2", ClientEmail: "r2@example.com"})
	assert.Equal(t, "Client name can only contain letters, spaces, hyphens, and apostrophes", err.Error())

	_, err = svc.Client.Create(ctx, "admin-001", &CreateClientRequest{ClientName: "Bilal", ClientEmail: "bilal@example"})
	assert.Equal(t, "Please enter a valid email address", err.Error())

	got, err := svc.Client.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lahore", got.ClientCity)

	_, total, err := svc.Client.List(ctx, 1, 10, map[string]string{"client_city": "Lahore"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
