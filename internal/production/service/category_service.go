package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sarakts28/febric-flow-backend/internal/production/entity"
	"github.com/sarakts28/febric-flow-backend/internal/production/repository"
)

type CategoryService struct {
	repos *repository.Repositories
}

func NewCategoryService(repos *repository.Repositories) *CategoryService {
	return &CategoryService{repos: repos}
}

type CreateCategoryRequest struct {
	CategoryName   string `json:"category_name"`
	CategorySeason string `json:"category_season"`
}

func (s *CategoryService) Create(ctx context.Context, userID string, req *CreateCategoryRequest) (*entity.Category, error) {
	name := strings.TrimSpace(req.CategoryName)
	if name == "" || req.CategorySeason == "" {
		return nil, Validation("Category name and season are required")
	}
	if len([]rune(name)) > 100 {
		return nil, Validation("Category name cannot exceed 100 characters")
	}
	if _, err := s.repos.Category.FindByName(ctx, name); err == nil {
		return nil, Validation("Category already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Persistence(err)
	}
	if !entity.IsValid(entity.EnumSeason, req.CategorySeason) {
		return nil, Validation("%s", entity.EnumError("Category season", req.CategorySeason, entity.EnumSeason))
	}

	category := &entity.Category{
		ID:             uuid.New().String(),
		CategoryName:   name,
		CategorySeason: req.CategorySeason,
		CreatedBy:      userID,
	}
	if err := s.repos.Category.Create(ctx, category); err != nil {
		if repository.IsDuplicate(err) {
			return nil, Validation("Category already exists")
		}
		return nil, Persistence(err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Category, int64, error) {
	items, total, err := s.repos.Category.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, Persistence(err)
	}
	return items, total, nil
}

func (s *CategoryService) ListAll(ctx context.Context) ([]entity.Category, error) {
	items, err := s.repos.Category.ListAll(ctx)
	if err != nil {
		return nil, Persistence(err)
	}
	return items, nil
}

// Delete refuses while articles reference the category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Validation("Invalid category id")
	}
	return s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Category.FindByID(ctx, id); err != nil {
			return storeErr(err, "Category not found")
		}
		inUse, err := tx.Article.CountByCategory(ctx, id)
		if err != nil {
			return Persistence(err)
		}
		if inUse > 0 {
			return Conflict("Category is used by %d article(s) and cannot be deleted", inUse)
		}
		if err := tx.Category.Delete(ctx, id); err != nil {
			return Persistence(err)
		}
		return nil
	})
}
