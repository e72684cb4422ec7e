package transport

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/search"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// numericIDPattern constrains catalog routes to integer identifiers
const numericIDPattern = "{id:[0-9]+}"

// ProductSearcher is the search backend for the dedicated search endpoint
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string, page, pageSize int) (*search.SearchResult, error)
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	searcher       ProductSearcher
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, searcher ProductSearcher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		searcher:       searcher,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Reads are public; writes
// require an admin.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/search", h.SearchProducts)
		r.Get("/"+numericIDPattern, h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, adminMiddleware)
			r.Post("/", h.CreateProduct)
			r.Put("/"+numericIDPattern, h.UpdateProduct)
			r.Delete("/"+numericIDPattern, h.DeleteProduct)
		})
	})
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// CreateProduct handles product creation
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.ProductCreate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		h.logger.Debug("Product validation failed", zap.Int("violations", len(errs)))
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.productService.CreateProduct(r.Context(), service.CreateProductInput{
		Name:             strVal(payload, "name"),
		Description:      strVal(payload, "description"),
		ShortDescription: strVal(payload, "short_description"),
		Price:            floatVal(payload, "price"),
		SalePrice:        floatPtr(payload, "sale_price"),
		SKU:              strVal(payload, "sku"),
		StockQuantity:    intVal(payload, "stock_quantity"),
		CategoryID:       int64Val(payload, "category_id"),
		FeaturedImage:    strVal(payload, "featured_image"),
		Gallery:          sliceVal(payload, "gallery"),
		Status:           strings.ToLower(strVal(payload, "status")),
		IsFeatured:       boolVal(payload, "is_featured"),
		MetaTitle:        strVal(payload, "meta_title"),
		MetaDescription:  strVal(payload, "meta_description"),
	})
	middleware.RespondWithResult(w, http.StatusCreated, result)
}

// GetProduct returns a single product by ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found", service.CodeNotFound)
		return
	}
	result := h.productService.GetProduct(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// ListProducts returns one page of products, filtered and sorted from query
// parameters
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	rs, _ := validation.Get(validation.ListQuery)
	params, errs := rs.Validate(queryPayload(r))
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.productService.ListProducts(r.Context(), service.ListParams{
		Page:       intVal(params, "page"),
		Limit:      intVal(params, "limit"),
		SortBy:     strVal(params, "sort_by"),
		SortOrder:  strVal(params, "sort_order"),
		CategoryID: int64Ptr(params, "category_id"),
		Status:     strings.ToLower(strVal(params, "status")),
		Search:     strVal(params, "search"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// SearchProducts runs a full-text query against the search index
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	rs, _ := validation.Get(validation.ListQuery)
	params, errs := rs.Validate(queryPayload(r))
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	query := strings.TrimSpace(strVal(params, "search"))
	if query == "" {
		middleware.RespondWithValidationErrors(w, validation.Errors{
			{Field: "search", Message: "This field is required", Value: nil},
		})
		return
	}

	found, err := h.searcher.SearchProducts(r.Context(), query, intVal(params, "page"), intVal(params, "limit"))
	if err != nil {
		h.logger.Error("Product search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to search products", service.CodeStore)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, service.OK("Products retrieved successfully", found))
}

// UpdateProduct applies a partial update to a product
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found", service.CodeNotFound)
		return
	}

	payload, errs, err := validatePayload(r, validation.ProductUpdate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.productService.UpdateProduct(r.Context(), id, service.UpdateProductInput{
		Name:             strPtr(payload, "name"),
		Description:      strPtr(payload, "description"),
		ShortDescription: strPtr(payload, "short_description"),
		Price:            floatPtr(payload, "price"),
		SalePrice:        floatPtr(payload, "sale_price"),
		SKU:              strPtr(payload, "sku"),
		StockQuantity:    intPtr(payload, "stock_quantity"),
		CategoryID:       int64Ptr(payload, "category_id"),
		FeaturedImage:    strPtr(payload, "featured_image"),
		Gallery:          sliceVal(payload, "gallery"),
		Status:           strPtr(payload, "status"),
		IsFeatured:       boolPtr(payload, "is_featured"),
		MetaTitle:        strPtr(payload, "meta_title"),
		MetaDescription:  strPtr(payload, "meta_description"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found", service.CodeNotFound)
		return
	}
	result := h.productService.DeleteProduct(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}
