package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes. Reads are public; writes
// require an admin.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/"+numericIDPattern, h.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, adminMiddleware)
			r.Post("/", h.CreateCategory)
			r.Put("/"+numericIDPattern, h.UpdateCategory)
			r.Delete("/"+numericIDPattern, h.DeleteCategory)
		})
	})
}

// CreateCategory handles category creation
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.CategoryCreate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.categoryService.CreateCategory(r.Context(), service.CreateCategoryInput{
		Name:        strVal(payload, "name"),
		Description: strVal(payload, "description"),
		Image:       strVal(payload, "image"),
		ParentID:    int64Ptr(payload, "parent_id"),
		SortOrder:   intVal(payload, "sort_order"),
		IsActive:    boolVal(payload, "is_active"),
	})
	middleware.RespondWithResult(w, http.StatusCreated, result)
}

// ListCategories returns all categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result := h.categoryService.ListCategories(r.Context())
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// GetCategory returns a single category by ID
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found", service.CodeNotFound)
		return
	}
	result := h.categoryService.GetCategory(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// UpdateCategory applies a partial update to a category
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found", service.CodeNotFound)
		return
	}

	payload, errs, err := validatePayload(r, validation.CategoryUpdate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.categoryService.UpdateCategory(r.Context(), id, service.UpdateCategoryInput{
		Name:        strPtr(payload, "name"),
		Description: strPtr(payload, "description"),
		Image:       strPtr(payload, "image"),
		ParentID:    int64Ptr(payload, "parent_id"),
		SortOrder:   intPtr(payload, "sort_order"),
		IsActive:    boolPtr(payload, "is_active"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// DeleteCategory removes a category
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Category not found", service.CodeNotFound)
		return
	}
	result := h.categoryService.DeleteCategory(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}
