package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// CategoryService is the entity access facade for categories
type CategoryService interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) Result
	ListCategories(ctx context.Context) Result
	GetCategory(ctx context.Context, id int64) Result
	UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) Result
	DeleteCategory(ctx context.Context, id int64) Result
}

// CreateCategoryInput carries a validated category creation payload
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
	ParentID    *int64
	SortOrder   int
	IsActive    bool
}

// UpdateCategoryInput carries a partial category update
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Image       *string
	ParentID    *int64
	SortOrder   *int
	IsActive    *bool
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, logger: logger}
}

// CreateCategory creates a category; parent_id must reference an existing
// category
func (s *categoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) Result {
	now := time.Now()
	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		ParentID:    input.ParentID,
		SortOrder:   input.SortOrder,
		IsActive:    input.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail("Parent category does not exist", CodeValidation)
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return Fail("Unable to create category", CodeStore)
	}

	return OK("Category created successfully", category)
}

// ListCategories returns all categories
func (s *categoryService) ListCategories(ctx context.Context) Result {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return Fail("Unable to list categories", CodeStore)
	}
	return OK("Categories retrieved successfully", categories)
}

// GetCategory looks up a category by identifier
func (s *categoryService) GetCategory(ctx context.Context, id int64) Result {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail("Category not found", CodeNotFound)
		}
		s.logger.Error("Failed to get category", zap.Error(err))
		return Fail("Unable to get category", CodeStore)
	}
	return OK("Category retrieved successfully", category)
}

// UpdateCategory applies only the provided fields and returns the
// post-update record
func (s *categoryService) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) Result {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail("Category not found", CodeNotFound)
		}
		s.logger.Error("Failed to load category for update", zap.Error(err))
		return Fail("Unable to update category", CodeStore)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Image != nil {
		category.Image = *input.Image
	}
	if input.ParentID != nil {
		category.ParentID = input.ParentID
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail("Category not found", CodeNotFound)
		}
		s.logger.Error("Failed to update category", zap.Error(err))
		return Fail("Unable to update category", CodeStore)
	}

	return OK("Category updated successfully", category)
}

// DeleteCategory hard-deletes a category
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) Result {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return Fail("Category not found", CodeNotFound)
		}
		s.logger.Error("Failed to delete category", zap.Error(err))
		return Fail("Unable to delete category", CodeStore)
	}
	return OK("Category deleted successfully", nil)
}
