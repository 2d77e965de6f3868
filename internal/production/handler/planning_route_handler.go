package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/production/service"
)

type PlanningRouteHandler struct {
	svc *service.PlanningRouteService
}

func NewPlanningRouteHandler(svc *service.PlanningRouteService) *PlanningRouteHandler {
	return &PlanningRouteHandler{svc: svc}
}

// CreatePlanningRoute POST /api/v1/planning-routes
func (h *PlanningRouteHandler) CreatePlanningRoute(c *gin.Context) {
	var req service.CreatePlanningRouteRequest
	if !bindJSON(c, &req) {
		return
	}
	route, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Planning route created successfully", route)
}

// ListPlanningRoutes GET /api/v1/planning-routes?search=&page=1&limit=10
func (h *PlanningRouteHandler) ListPlanningRoutes(c *gin.Context) {
	page, limit := GetPagination(c)
	filters := map[string]string{
		"search":              c.Query("search"),
		"planning_route_type": c.Query("planning_route_type"),
	}
	items, total, err := h.svc.List(c.Request.Context(), page, limit, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	pagination, err := BuildPagination(page, limit, total)
	if err != nil {
		RespondError(c, err)
		return
	}
	Paginated(c, "Planning routes fetched successfully", items, pagination)
}

// ListAllPlanningRoutes GET /api/v1/planning-routes/all
func (h *PlanningRouteHandler) ListAllPlanningRoutes(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Planning routes fetched successfully", items)
}

// GetPlanningRoute GET /api/v1/planning-routes/:id
func (h *PlanningRouteHandler) GetPlanningRoute(c *gin.Context) {
	id := c.Param("id")
	route, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Planning route with id "+id+" fetched successfully", route)
}

// UpdatePlanningRoute PATCH /api/v1/planning-routes/:id
func (h *PlanningRouteHandler) UpdatePlanningRoute(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdatePlanningRouteRequest
	ok := bindPatch(c, service.PlanningRouteUpdatableFields, &req, func(invalid []string) string {
		return "Only " + quoteList(service.PlanningRouteUpdatableFields) +
			" fields can be updated. Invalid fields: " + strings.Join(invalid, ", ")
	})
	if !ok {
		return
	}
	route, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Planning route with id "+id+" updated successfully", route)
}

// DeletePlanningRoute DELETE /api/v1/planning-routes/:id
func (h *PlanningRouteHandler) DeletePlanningRoute(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Planning route deleted successfully", nil)
}
