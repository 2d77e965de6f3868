package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sarakts28/febric-flow-backend/internal/production/service"
)

type ArticleHandler struct {
	svc *service.ArticleService
}

func NewArticleHandler(svc *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// CreateArticle POST /api/v1/articles
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req service.CreateArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	article, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Article design created successfully", article)
}

// ListArticles GET /api/v1/articles?status=&article_no=&fabric_type=&search=&page=1&limit=10
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page, limit := GetPagination(c)
	filters := map[string]string{
		"status":      c.Query("status"),
		"article_no":  c.Query("article_no"),
		"fabric_type": c.Query("fabric_type"),
		"search":      c.Query("search"),
	}

	items, total, err := h.svc.List(c.Request.Context(), GetActor(c), page, limit, filters)
	if err != nil {
		RespondError(c, err)
		return
	}
	pagination, err := BuildPagination(page, limit, total)
	if err != nil {
		RespondError(c, err)
		return
	}
	Paginated(c, "Articles fetched successfully", items, pagination)
}

// ListRawArticles GET /api/v1/articles/raw
func (h *ArticleHandler) ListRawArticles(c *gin.Context) {
	items, err := h.svc.ListRaw(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Articles with status 'raw' fetched successfully", items)
}

// GetArticle GET /api/v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	article, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article fetched successfully", article)
}

// UpdateArticle PATCH /api/v1/articles/:id
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	var req service.UpdateArticleRequest
	ok := bindPatch(c, service.ArticleUpdatableFields, &req, func([]string) string {
		return "Only " + strings.Join(service.ArticleUpdatableFields, ", ") + " are allowed to update"
	})
	if !ok {
		return
	}
	article, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article updated successfully", article)
}

// UploadImages POST /api/v1/articles/:id/images (multipart, field article_images)
func (h *ArticleHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		BadRequest(c, "Multipart form with article_images is required")
		return
	}
	files := form.File["article_images"]
	if len(files) > service.MaxImagesPerUpload {
		BadRequest(c, "At most 10 images can be uploaded at once")
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			BadRequest(c, "Cannot read uploaded file "+fh.Filename)
			return
		}
		defer f.Close()
		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	article, err := h.svc.AddImages(c.Request.Context(), c.Param("id"), uploads)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article images uploaded successfully", article)
}

// DeleteArticle DELETE /api/v1/articles/:id
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Article deleted successfully", nil)
}
