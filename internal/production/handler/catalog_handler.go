package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/production/service"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CreateCategory POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Category created successfully", category)
}

// ListCategories GET /api/v1/categories?search=&page=1&limit=10
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, limit := GetPagination(c)
	filters := map[string]string{
		"search":          c.Query("search"),
		"category_season": c.Query("category_season"),
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
	Paginated(c, "Categories fetched successfully", items, pagination)
}

// ListAllCategories GET /api/v1/categories/all
func (h *CategoryHandler) ListAllCategories(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Categories fetched successfully", items)
}

// DeleteCategory DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Category deleted successfully", nil)
}

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// CreateClient POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Client created successfully", client)
}

// ListClients GET /api/v1/clients?search=&client_city=&page=1&limit=10
func (h *ClientHandler) ListClients(c *gin.Context) {
	page, limit := GetPagination(c)
	filters := map[string]string{
		"search":      c.Query("search"),
		"client_city": c.Query("client_city"),
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
	Paginated(c, "Clients fetched successfully", items, pagination)
}

// GetClient GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Client fetched successfully", client)
}
