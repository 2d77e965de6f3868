package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sarakts28/febric-flow-backend/internal/middleware"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "fabric-flow-test-secret"

// Now is the instant FixedClock reports: mid-morning so date-only and
// instant comparisons differ.
var Now = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

// FixedClock always returns Now.
func FixedClock() time.Time { return Now }

// Day returns the YYYY-MM-DD string offset days from Now.
func Day(offset int) string {
	return Now.AddDate(0, 0, offset).Format("2006-01-02")
}

// Date returns midnight UTC offset days from Now.
func Date(offset int) time.Time {
	y, m, d := Now.AddDate(0, 0, offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SetupTestDB opens a migrated sqlite database in a per-test temp file.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fabricflow.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(0)"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Client{},
		&entity.PlanningRoute{},
		&entity.Article{},
		&entity.ArticlePlanning{},
		&entity.ActivityLog{},
	); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// SetupRouter creates a gin engine in test mode.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group behind JWT verification.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken signs an HS256 token carrying the given identity.
func GenerateTestToken(userID, name, email string, roles []string) string {
	if roles == nil {
		roles = []string{}
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"roles": roles,
		"iss":   "fabric-flow",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(JWTSecret))
	return signed
}

func AdminToken() string {
	return GenerateTestToken("admin-001", "Test Admin", "admin@test.com", []string{entity.RoleAdmin})
}

func DesignerToken() string {
	return GenerateTestToken("designer-001", "Test Designer", "designer@test.com", []string{entity.RoleDesigner})
}

func CashierToken() string {
	return GenerateTestToken("cashier-001", "Test Cashier", "cashier@test.com", []string{entity.RoleCashier})
}

// DoRequest executes an HTTP request against the router. A string body is
// sent verbatim; anything else is JSON encoded.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = &bytes.Buffer{}
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// APIResponse mirrors the JSON envelope.
type APIResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       json.RawMessage        `json:"data"`
	Pagination map[string]interface{} `json:"pagination"`
}

func ParseResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// ParseData decodes the envelope's data into dst.
func ParseData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) APIResponse {
	t.Helper()
	resp := ParseResponse(t, w)
	if err := json.Unmarshal(resp.Data, dst); err != nil {
		t.Fatalf("Failed to parse data: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// AssertStatus fails the test when the recorder status is not want.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d. Body: %s", want, w.Code, w.Body.String())
	}
}

// === seed helpers ===

func SeedCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	category := &entity.Category{
		ID:             uuid.New().String(),
		CategoryName:   name,
		CategorySeason: entity.SeasonSummer,
		CreatedBy:      "admin-001",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	return category
}

func SeedArticle(t *testing.T, db *gorm.DB, categoryID, articleNo, status string) *entity.Article {
	t.Helper()
	article := &entity.Article{
		ID:              uuid.New().String(),
		ArticleNo:       articleNo,
		ArticleName:     "Article " + articleNo,
		CategoryID:      categoryID,
		FabricType:      entity.FabricUnstitch,
		MeasurementType: entity.MeasurementMeter,
		Status:          status,
		ActiveStatus:    true,
		TotalQuantity:   100,
		Price:           decimal.NewFromInt(2500),
		DesignerName:    "Test Designer",
		CreatedBy:       "designer-001",
	}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}
	return article
}

func SeedRoute(t *testing.T, db *gorm.DB, name string) *entity.PlanningRoute {
	t.Helper()
	route := &entity.PlanningRoute{
		ID:                uuid.New().String(),
		PlanningRouteName: name,
		PlanningRouteType: entity.RouteTypeDyeing,
		CostPerMeter:      decimal.NewFromInt(40),
		LeadTimeDays:      5,
		CreatedBy:         "admin-001",
	}
	if err := db.Create(route).Error; err != nil {
		t.Fatalf("Failed to seed planning route: %v", err)
	}
	return route
}

// PlanningSeed overrides the defaults of SeedPlanning.
type PlanningSeed struct {
	Status    string
	OrderSlip string
	Start     time.Time
	End       time.Time
	Late      bool
}

var seeded int

// SeedPlanning inserts a record directly, bypassing the workflow.
func SeedPlanning(t *testing.T, db *gorm.DB, articleID, routeID string, s PlanningSeed) *entity.ArticlePlanning {
	t.Helper()
	if s.Status == "" {
		s.Status = entity.PlanningStatusInProgress
	}
	if s.OrderSlip == "" {
		s.OrderSlip = entity.OrderSlipIssued
	}
	if s.Start.IsZero() {
		s.Start = Date(0)
	}
	if s.End.IsZero() {
		s.End = Date(7)
	}
	seeded++
	planning := &entity.ArticlePlanning{
		ID:               uuid.New().String(),
		ArticleID:        articleID,
		PlanningRouteID:  routeID,
		PlanningName:     fmt.Sprintf("PL-%04d", 9000+seeded),
		Status:           s.Status,
		OrderSlip:        s.OrderSlip,
		TotalPayment:     decimal.NewFromInt(5000),
		ProcessDays:      7,
		WhenProcessStart: s.Start,
		WhenProcessEnd:   s.End,
		Late:             s.Late,
		Version:          1,
		CreatedBy:        "admin-001",
	}
	if err := db.Omit("Article", "PlanningRoute").Create(planning).Error; err != nil {
		t.Fatalf("Failed to seed article planning: %v", err)
	}
	return planning
}

// Reload fetches a fresh copy of dst by id.
func Reload(t *testing.T, db *gorm.DB, dst interface{}, id string) {
	t.Helper()
	if err := db.Where("id = ?", id).First(dst).Error; err != nil {
		t.Fatalf("Failed to reload %T %s: %v", dst, id, err)
	}
}
