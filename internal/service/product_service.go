package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/search"

	"go.uber.org/zap"
)

// ProductService is the entity access facade for products
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) Result
	GetProduct(ctx context.Context, id int64) Result
	ListProducts(ctx context.Context, params ListParams) Result
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) Result
	DeleteProduct(ctx context.Context, id int64) Result
}

// CreateProductInput carries a validated product creation payload
type CreateProductInput struct {
	Name             string
	Description      string
	ShortDescription string
	Price            float64
	SalePrice        *float64
	SKU              string
	StockQuantity    int
	CategoryID       int64
	FeaturedImage    string
	Gallery          []string
	Status           string
	IsFeatured       bool
	MetaTitle        string
	MetaDescription  string
}

// UpdateProductInput carries a partial product update; nil fields are left
// untouched
type UpdateProductInput struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Price            *float64
	SalePrice        *float64
	SKU              *string
	StockQuantity    *int
	CategoryID       *int64
	FeaturedImage    *string
	Gallery          []string
	Status           *string
	IsFeatured       *bool
	MetaTitle        *string
	MetaDescription  *string
}

// ListParams narrows and pages a product listing
type ListParams struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	CategoryID *int64
	Status     string
	Search     string
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	indexer      search.Indexer
	logger       *zap.Logger
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	indexer search.Indexer,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		indexer:      indexer,
		logger:       logger,
	}
}

// CreateProduct creates a product and pushes its document into the search
// index. Indexing is best-effort: a search outage does not fail the write.
func (s *productService) CreateProduct(ctx context.Context, input CreateProductInput) Result {
	now := time.Now()
	product := &domain.Product{
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		SalePrice:        input.SalePrice,
		SKU:              input.SKU,
		StockQuantity:    input.StockQuantity,
		CategoryID:       input.CategoryID,
		FeaturedImage:    input.FeaturedImage,
		Gallery:          input.Gallery,
		Status:           input.Status,
		IsFeatured:       input.IsFeatured,
		MetaTitle:        input.MetaTitle,
		MetaDescription:  input.MetaDescription,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrCategoryMissing) {
			return Fail("Referenced category does not exist", CodeValidation)
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return Fail("Unable to create product", CodeStore)
	}

	s.indexProduct(ctx, product)

	return OK("Product created successfully", product)
}

// GetProduct looks up a product and bumps its view counter
func (s *productService) GetProduct(ctx context.Context, id int64) Result {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return Fail("Product not found", CodeNotFound)
		}
		s.logger.Error("Failed to get product", zap.Error(err))
		return Fail("Unable to get product", CodeStore)
	}

	if err := s.productRepo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Debug("Failed to increment view count", zap.Int64("product_id", id), zap.Error(err))
	} else {
		product.ViewCount++
	}

	return OK("Product retrieved successfully", product)
}

// ListProducts returns one page of products. A non-empty Search falls back
// to the relational name/description match.
func (s *productService) ListProducts(ctx context.Context, params ListParams) Result {
	var (
		products []*domain.Product
		total    int
		err      error
	)

	if strings.TrimSpace(params.Search) != "" {
		products, total, err = s.productRepo.Search(ctx, params.Search, params.Page, params.Limit)
	} else {
		filter := repository.ProductFilter{CategoryID: params.CategoryID, Status: params.Status}
		order := repository.SortOrder(strings.ToUpper(params.SortOrder))
		products, total, err = s.productRepo.List(ctx, filter, params.Page, params.Limit, params.SortBy, order)
	}

	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return Fail("Unable to list products", CodeStore)
	}

	return OK("Products retrieved successfully", Page{
		Items: products,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	})
}

// UpdateProduct applies only the provided fields, reindexes the document,
// and returns the post-update record
func (s *productService) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) Result {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return Fail("Product not found", CodeNotFound)
		}
		s.logger.Error("Failed to load product for update", zap.Error(err))
		return Fail("Unable to update product", CodeStore)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ShortDescription != nil {
		product.ShortDescription = *input.ShortDescription
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.SalePrice != nil {
		product.SalePrice = input.SalePrice
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.FeaturedImage != nil {
		product.FeaturedImage = *input.FeaturedImage
	}
	if input.Gallery != nil {
		product.Gallery = input.Gallery
	}
	if input.Status != nil {
		product.Status = strings.ToLower(*input.Status)
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.MetaTitle != nil {
		product.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		product.MetaDescription = *input.MetaDescription
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return Fail("Product not found", CodeNotFound)
		case errors.Is(err, repository.ErrCategoryMissing):
			return Fail("Referenced category does not exist", CodeValidation)
		}
		s.logger.Error("Failed to update product", zap.Error(err))
		return Fail("Unable to update product", CodeStore)
	}

	s.indexProduct(ctx, product)

	return OK("Product updated successfully", product)
}

// DeleteProduct hard-deletes a product and removes its search document
func (s *productService) DeleteProduct(ctx context.Context, id int64) Result {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return Fail("Product not found", CodeNotFound)
		}
		s.logger.Error("Failed to delete product", zap.Error(err))
		return Fail("Unable to delete product", CodeStore)
	}

	if err := s.indexer.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("Failed to remove product from search index", zap.Int64("product_id", id), zap.Error(err))
	}

	return OK("Product deleted successfully", nil)
}

func (s *productService) indexProduct(ctx context.Context, product *domain.Product) {
	categoryName := ""
	if category, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err == nil {
		categoryName = category.Name
	}

	rating, err := s.reviewRepo.AverageRating(ctx, product.ID)
	if err != nil {
		rating = 0
	}

	doc := search.NewProductDocument(product, categoryName, rating)
	if err := s.indexer.IndexProduct(ctx, doc); err != nil {
		s.logger.Warn("Failed to index product", zap.Int64("product_id", product.ID), zap.Error(err))
	}
}
