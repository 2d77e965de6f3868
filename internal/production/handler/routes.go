package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/middleware"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
)

// RegisterRoutes mounts the production API on an authenticated group.
func RegisterRoutes(api *gin.RouterGroup, h *Handlers) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)
	staff := middleware.RequireRole(entity.RoleAdmin, entity.RoleDesigner)

	articles := api.Group("/articles", staff)
	{
		articles.POST("", h.Article.CreateArticle)
		articles.GET("", h.Article.ListArticles)
		articles.GET("/raw", h.Article.ListRawArticles)
		articles.GET("/:id", h.Article.GetArticle)
		articles.PATCH("/:id", h.Article.UpdateArticle)
		articles.POST("/:id/images", h.Article.UploadImages)
		articles.DELETE("/:id", h.Article.DeleteArticle)
	}

	categories := api.Group("/categories")
	{
		categories.POST("", adminOnly, h.Category.CreateCategory)
		categories.GET("", staff, h.Category.ListCategories)
		categories.GET("/all", staff, h.Category.ListAllCategories)
		categories.DELETE("/:id", adminOnly, h.Category.DeleteCategory)
	}

	clients := api.Group("/clients")
	{
		clients.POST("", adminOnly, h.Client.CreateClient)
		clients.GET("", staff, h.Client.ListClients)
		clients.GET("/:id", staff, h.Client.GetClient)
	}

	routes := api.Group("/planning-routes")
	{
		routes.POST("", adminOnly, h.PlanningRoute.CreatePlanningRoute)
		routes.GET("", staff, h.PlanningRoute.ListPlanningRoutes)
		routes.GET("/all", staff, h.PlanningRoute.ListAllPlanningRoutes)
		routes.GET("/:id", staff, h.PlanningRoute.GetPlanningRoute)
		routes.PATCH("/:id", adminOnly, h.PlanningRoute.UpdatePlanningRoute)
		routes.DELETE("/:id", adminOnly, h.PlanningRoute.DeletePlanningRoute)
	}

	planning := api.Group("/article-planning", staff)
	{
		planning.POST("", h.ArticlePlanning.CreatePlanning)
		planning.GET("", h.ArticlePlanning.ListPlannings)
		planning.GET("/export", h.ArticlePlanning.ExportPlannings)
		planning.GET("/:id", h.ArticlePlanning.GetPlanning)
		planning.GET("/:id/activities", h.ArticlePlanning.ListActivities)
		planning.PATCH("/:id", h.ArticlePlanning.UpdatePlanning)
		planning.PATCH("/:id/order-slip", h.ArticlePlanning.UpdateOrderSlip)
		planning.PATCH("/:id/status", h.ArticlePlanning.UpdateStatus)
		planning.DELETE("/:id", h.ArticlePlanning.DeletePlanning)
	}

	api.GET("/sse/events", staff, h.SSE.Stream)
}
