package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/middleware"
	"github.com/sarakts28/febric-flow-backend/internal/production/service"
	"github.com/sarakts28/febric-flow-backend/internal/shared/sse"
	"go.uber.org/zap"
)

// Handlers groups the production HTTP handlers.
type Handlers struct {
	Article         *ArticleHandler
	Category        *CategoryHandler
	Client          *ClientHandler
	PlanningRoute   *PlanningRouteHandler
	ArticlePlanning *ArticlePlanningHandler
	SSE             *SSEHandler
}

func NewHandlers(svc *service.Services, hub *sse.Hub, logger *zap.Logger) *Handlers {
	return &Handlers{
		Article:         NewArticleHandler(svc.Article),
		Category:        NewCategoryHandler(svc.Category),
		Client:          NewClientHandler(svc.Client),
		PlanningRoute:   NewPlanningRouteHandler(svc.PlanningRoute),
		ArticlePlanning: NewArticlePlanningHandler(svc.ArticlePlanning),
		SSE:             NewSSEHandler(hub, logger),
	}
}

// === response envelope ===

type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageLimit   int   `json:"page_limit"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	IsNext      bool  `json:"isNext"`
	IsPrev      bool  `json:"isPrev"`
}

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, message string, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, Pagination: p})
}

func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// RespondError maps a service error kind onto the HTTP status.
func RespondError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		_ = c.Error(err)
		InternalError(c, "Internal server error")
		return
	}
	switch se.Kind {
	case service.KindValidation, service.KindConflict:
		BadRequest(c, se.Message)
	case service.KindNotFound:
		NotFound(c, se.Message)
	default:
		_ = c.Error(err)
		InternalError(c, se.Message)
	}
}

// === request helpers ===

func GetUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserID)
}

// GetActor builds the caller identity from the verified token.
func GetActor(c *gin.Context) service.Actor {
	actor := service.Actor{
		UserID: c.GetString(middleware.CtxUserID),
		Name:   c.GetString(middleware.CtxUserName),
	}
	if roles, ok := c.Get(middleware.CtxRoles); ok {
		actor.Roles, _ = roles.([]string)
	}
	return actor
}

// GetPagination reads page and limit, defaulting to 1 and 10.
func GetPagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 10

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := c.DefaultQuery("limit", c.Query("page_limit")); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	return page, limit
}

// BuildPagination fails when page lies past the last page.
func BuildPagination(page, limit int, total int64) (*Pagination, error) {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if page > 1 && page > totalPages {
		return nil, service.Validation("Page %d does not exist. Maximum page is %d", page, totalPages)
	}
	return &Pagination{
		CurrentPage: page,
		PageLimit:   limit,
		TotalPages:  totalPages,
		TotalItems:  total,
		IsNext:      page < totalPages,
		IsPrev:      page > 1,
	}, nil
}

// bindJSON decodes the body into dst, reporting malformed input as a 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			BadRequest(c, "Request body is required")
			return false
		}
		BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindPatch decodes a partial update after checking that only allowed keys
// are present. reject builds the message for the offending keys.
func bindPatch(c *gin.Context, allowed []string, dst interface{}, reject func(invalid []string) string) bool {
	raw, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		BadRequest(c, "Request body is required")
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}

	var invalid []string
	for key := range fields {
		if !contains(allowed, key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		BadRequest(c, reject(invalid))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func quoteList(list []string) string {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = fmt.Sprintf("'%s'", s)
	}
	return strings.Join(quoted, " and ")
}
