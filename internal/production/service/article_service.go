package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// MaxImagesPerUpload caps one multipart upload.
const MaxImagesPerUpload = 10

// ImageStore persists uploaded article pictures and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

// ImageUpload is one file of a multipart upload.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ArticleService struct {
	repos  *repository.Repositories
	images ImageStore
	logger *zap.Logger
}

func NewArticleService(repos *repository.Repositories, images ImageStore, logger *zap.Logger) *ArticleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleService{repos: repos, images: images, logger: logger}
}

type CreateArticleRequest struct {
	ArticleNo          string                `json:"article_no"`
	ArticleName        string                `json:"article_name"`
	ArticleDescription string                `json:"article_description"`
	CategoryID         string                `json:"category_id"`
	FabricType         string                `json:"fabric_type"`
	MeasurementType    string                `json:"measurement_type"`
	TotalQuantity      *int                  `json:"total_quantity"`
	DesignerName       string                `json:"designer_name"`
	Price              *decimal.Decimal      `json:"price"`
	Status             string                `json:"status"`
	ArticleImages      []entity.ArticleImage `json:"article_images"`
}

// UpdateArticleRequest carries the fields that stay editable after creation.
type UpdateArticleRequest struct {
	Status                  *string                `json:"status"`
	ActiveStatus            *bool                  `json:"active_status"`
	TotalStoresAssigned     *int                   `json:"total_stores_assigned"`
	TotalQuantityDispatched *int                   `json:"total_quantity_dispatched"`
	ArticleImages           *[]entity.ArticleImage `json:"article_images"`
}

// ArticleUpdatableFields lists the keys a PATCH may carry.
var ArticleUpdatableFields = []string{
	"status", "active_status", "total_stores_assigned", "total_quantity_dispatched", "article_images",
}

func validateImages(images []entity.ArticleImage) error {
	for _, img := range images {
		if !strings.HasPrefix(img.URL, "http") && !strings.HasPrefix(img.URL, "/uploads/") {
			return Validation("Image URL must be a valid URL or file path")
		}
	}
	return nil
}

func (s *ArticleService) Create(ctx context.Context, actor Actor, req *CreateArticleRequest) (*entity.Article, error) {
	req.ArticleNo = strings.TrimSpace(req.ArticleNo)
	req.ArticleName = strings.TrimSpace(req.ArticleName)
	req.ArticleDescription = strings.TrimSpace(req.ArticleDescription)
	req.DesignerName = strings.TrimSpace(req.DesignerName)

	var missing []string
	for _, f := range []struct {
		name    string
		present bool
	}{
		{"article_no", req.ArticleNo != ""},
		{"article_name", req.ArticleName != ""},
		{"article_description", req.ArticleDescription != ""},
		{"category_id", req.CategoryID != ""},
		{"fabric_type", req.FabricType != ""},
		{"measurement_type", req.MeasurementType != ""},
		{"total_quantity", req.TotalQuantity != nil},
		{"price", req.Price != nil},
	} {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}

	switch {
	case len([]rune(req.ArticleNo)) > 50:
		return nil, Validation("Article number cannot exceed 50 characters")
	case len([]rune(req.ArticleName)) > 100:
		return nil, Validation("Article name cannot exceed 100 characters")
	case len([]rune(req.ArticleDescription)) > 500:
		return nil, Validation("Description cannot exceed 500 characters")
	case len([]rune(req.DesignerName)) > 100:
		return nil, Validation("Designer name cannot exceed 100 characters")
	case *req.TotalQuantity < 0:
		return nil, Validation("Quantity cannot be negative")
	case req.Price.IsNegative():
		return nil, Validation("Price cannot be negative")
	}

	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return nil, Validation("Invalid Category ID")
	}
	if _, err := s.repos.Category.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Validation("Invalid Category ID")
		}
		return nil, Persistence(err)
	}

	if !entity.IsValid(entity.EnumFabricType, req.FabricType) {
		return nil, Validation("%s", entity.EnumError("Fabric type", req.FabricType, entity.EnumFabricType))
	}
	if !entity.IsValid(entity.EnumMeasurementType, req.MeasurementType) {
		return nil, Validation("%s", entity.EnumError("Measurement type", req.MeasurementType, entity.EnumMeasurementType))
	}
	status := entity.ArticleStatusRaw
	if req.Status != "" {
		if !entity.IsValid(entity.EnumArticleStatus, req.Status) {
			return nil, Validation("%s", entity.EnumError("Status", req.Status, entity.EnumArticleStatus))
		}
		status = req.Status
	}
	if err := validateImages(req.ArticleImages); err != nil {
		return nil, err
	}

	if _, err := s.repos.Article.FindByArticleNo(ctx, req.ArticleNo); err == nil {
		return nil, Validation("Article with this number already exists %s", req.ArticleNo)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Persistence(err)
	}

	designer := req.DesignerName
	if designer == "" && actor.HasRole(entity.RoleDesigner) {
		designer = actor.Name
	}
	images := datatypes.JSONSlice[entity.ArticleImage]{}
	if len(req.ArticleImages) > 0 {
		images = datatypes.JSONSlice[entity.ArticleImage](req.ArticleImages)
	}

	article := &entity.Article{
		ID:                 uuid.New().String(),
		ArticleNo:          req.ArticleNo,
		ArticleName:        req.ArticleName,
		ArticleDescription: req.ArticleDescription,
		CategoryID:         req.CategoryID,
		FabricType:         req.FabricType,
		MeasurementType:    req.MeasurementType,
		Status:             status,
		ActiveStatus:       true,
		TotalQuantity:      *req.TotalQuantity,
		Price:              *req.Price,
		DesignerName:       designer,
		ArticleImages:      images,
		CreatedBy:          actor.UserID,
	}
	if err := s.repos.Article.Create(ctx, article); err != nil {
		if repository.IsDuplicate(err) {
			return nil, Validation("Article number already exists")
		}
		return nil, Persistence(err)
	}
	s.logger.Info("article created", zap.String("article_id", article.ID), zap.String("article_no", article.ArticleNo))
	return article, nil
}

// List restricts designers to the articles they created.
func (s *ArticleService) List(ctx context.Context, actor Actor, page, pageSize int, filters map[string]string) ([]entity.Article, int64, error) {
	if actor.HasRole(entity.RoleDesigner) && !actor.HasRole(entity.RoleAdmin) {
		filters["created_by"] = actor.UserID
	}
	items, total, err := s.repos.Article.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	return items, total, nil
}

func (s *ArticleService) ListRaw(ctx context.Context) ([]entity.Article, error) {
	items, err := s.repos.Article.FindByStatus(ctx, entity.ArticleStatusRaw)
	if err != nil {
		return nil, Persistence(err)
	}
	return items, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*entity.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article ID format")
	}
	article, err := s.repos.Article.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Article not found")
	}
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, req *UpdateArticleRequest) (*entity.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article ID")
	}
	if req.Status != nil && !entity.IsValid(entity.EnumArticleStatus, *req.Status) {
		return nil, Validation("%s", entity.EnumError("Status", *req.Status, entity.EnumArticleStatus))
	}
	if req.TotalStoresAssigned != nil && *req.TotalStoresAssigned < 0 {
		return nil, Validation("Stores assigned cannot be negative")
	}
	if req.TotalQuantityDispatched != nil && *req.TotalQuantityDispatched < 0 {
		return nil, Validation("Quantity dispatched cannot be negative")
	}
	if req.ArticleImages != nil {
		if err := validateImages(*req.ArticleImages); err != nil {
			return nil, err
		}
	}

	article, err := s.repos.Article.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Article not found")
	}

	if req.Status != nil {
		article.Status = *req.Status
	}
	if req.ActiveStatus != nil {
		article.ActiveStatus = *req.ActiveStatus
	}
	if !article.ActiveStatus && article.Status != entity.ArticleStatusFinished {
		return nil, Validation("Article status must be finished because active status is false")
	}
	if req.TotalStoresAssigned != nil {
		article.TotalStoresAssigned = *req.TotalStoresAssigned
	}
	if req.TotalQuantityDispatched != nil {
		article.TotalQuantityDispatched = *req.TotalQuantityDispatched
	}
	if req.ArticleImages != nil {
		article.ArticleImages = datatypes.JSONSlice[entity.ArticleImage](*req.ArticleImages)
	}

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, Persistence(err)
	}
	return article, nil
}

// AddImages stores each upload and appends it to the article. The first image
// of an article without pictures becomes primary.
func (s *ArticleService) AddImages(ctx context.Context, id string, uploads []ImageUpload) (*entity.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, Validation("Invalid article ID")
	}
	if len(uploads) == 0 {
		return nil, Validation("No images uploaded")
	}
	if len(uploads) > MaxImagesPerUpload {
		return nil, Validation("At most %d images can be uploaded at once", MaxImagesPerUpload)
	}
	if s.images == nil {
		return nil, Persistence(fmt.Errorf("image storage is not configured"))
	}

	article, err := s.repos.Article.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Article not found")
	}

	needPrimary := !article.HasPrimaryImage()
	for _, up := range uploads {
		objectName := fmt.Sprintf("articles/%s/%s%s", article.ID, uuid.New().String(), strings.ToLower(filepath.Ext(up.Filename)))
		url, err := s.images.Save(ctx, objectName, up.Body, up.Size, up.ContentType)
		if err != nil {
			return nil, Persistence(fmt.Errorf("store image %s: %w", up.Filename, err))
		}
		article.ArticleImages = append(article.ArticleImages, entity.ArticleImage{URL: url, IsPrimary: needPrimary})
		needPrimary = false
	}

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, Persistence(err)
	}
	s.logger.Info("article images added", zap.String("article_id", article.ID), zap.Int("count", len(uploads)))
	return article, nil
}

// Delete refuses while any article planning still references the article.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Validation("Invalid article ID format")
	}
	return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Article.FindByID(ctx, id); err != nil {
			return storeErr(err, "Article not found")
		}
		inUse, err := tx.ArticlePlanning.CountByArticle(ctx, id)
		if err != nil {
			return Persistence(err)
		}
		if inUse > 0 {
			return Conflict("Article is used by %d article planning record(s) and cannot be deleted", inUse)
		}
		if err := tx.Article.Delete(ctx, id); err != nil {
			return Persistence(err)
		}
		return nil
	})
}
