package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/production/service"
)

type ArticlePlanningHandler struct {
	svc *service.ArticlePlanningService
}

func NewArticlePlanningHandler(svc *service.ArticlePlanningService) *ArticlePlanningHandler {
	return &ArticlePlanningHandler{svc: svc}
}

func planningFilters(c *gin.Context) map[string]string {
	return map[string]string{
		"article_id":       c.Query("article_id"),
		"planningRoute_id": c.Query("planningRoute_id"),
		"status":           c.Query("status"),
		"order_slip":       c.Query("order_slip"),
		"search":           c.Query("search"),
	}
}

// CreatePlanning POST /api/v1/article-planning
func (h *ArticlePlanningHandler) CreatePlanning(c *gin.Context) {
	var req service.CreatePlanningRequest
	if !bindJSON(c, &req) {
		return
	}
	planning, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Article planning created successfully", planning)
}

// ListPlannings GET /api/v1/article-planning?article_id=&planningRoute_id=&status=&order_slip=&search=&page=1&limit=10
func (h *ArticlePlanningHandler) ListPlannings(c *gin.Context) {
	page, limit := GetPagination(c)
	items, total, err := h.svc.List(c.Request.Context(), page, limit, planningFilters(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	pagination, err := BuildPagination(page, limit, total)
	if err != nil {
		RespondError(c, err)
		return
	}
	Paginated(c, "Article Planning fetched successfully", items, pagination)
}

// GetPlanning GET /api/v1/article-planning/:id
func (h *ArticlePlanningHandler) GetPlanning(c *gin.Context) {
	planning, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article planning fetched successfully", planning)
}

// UpdatePlanning PATCH /api/v1/article-planning/:id
func (h *ArticlePlanningHandler) UpdatePlanning(c *gin.Context) {
	var req service.UpdatePlanningRequest
	if !bindJSON(c, &req) {
		return
	}
	planning, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article planning updated successfully", planning)
}

type orderSlipRequest struct {
	OrderSlip string `json:"order_slip"`
}

// UpdateOrderSlip PATCH /api/v1/article-planning/:id/order-slip
func (h *ArticlePlanningHandler) UpdateOrderSlip(c *gin.Context) {
	var req orderSlipRequest
	if !bindJSON(c, &req) {
		return
	}
	planning, err := h.svc.UpdateOrderSlip(c.Request.Context(), c.Param("id"), GetUserID(c), req.OrderSlip)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Order slip updated successfully", planning)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus PATCH /api/v1/article-planning/:id/status
func (h *ArticlePlanningHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	planning, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), GetUserID(c), req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article planning status updated successfully", planning)
}

// DeletePlanning DELETE /api/v1/article-planning/:id
func (h *ArticlePlanningHandler) DeletePlanning(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), GetUserID(c)); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article planning deleted successfully", nil)
}

// ListActivities GET /api/v1/article-planning/:id/activities?page=1&limit=10
func (h *ArticlePlanningHandler) ListActivities(c *gin.Context) {
	page, limit := GetPagination(c)
	items, total, err := h.svc.Activities(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	pagination, err := BuildPagination(page, limit, total)
	if err != nil {
		RespondError(c, err)
		return
	}
	Paginated(c, "Activities fetched successfully", items, pagination)
}

// ExportPlannings GET /api/v1/article-planning/export
func (h *ArticlePlanningHandler) ExportPlannings(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context(), planningFilters(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
