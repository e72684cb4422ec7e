package transport

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReviewHandler handles HTTP requests for product review operations
type ReviewHandler struct {
	reviewService service.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers review routes. Listing and reading are public;
// writes require authentication.
func (h *ReviewHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products/{productID:[0-9]+}/reviews", func(r chi.Router) {
		r.Get("/", h.ListProductReviews)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.CreateReview)
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/"+numericIDPattern, h.GetReview)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Put("/"+numericIDPattern, h.UpdateReview)
			r.Delete("/"+numericIDPattern, h.DeleteReview)
		})
	})
}

// CreateReview creates a review for the product in the route
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found", service.CodeNotFound)
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}

	// The product comes from the route, not the body
	payload["product_id"] = productID

	rs, _ := validation.Get(validation.ReviewCreate)
	normalized, errs := rs.Validate(payload)
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.reviewService.CreateReview(r.Context(), service.CreateReviewInput{
		ProductID: int64Val(normalized, "product_id"),
		Rating:    intVal(normalized, "rating"),
		Title:     strVal(normalized, "title"),
		Comment:   strVal(normalized, "comment"),
	})
	middleware.RespondWithResult(w, http.StatusCreated, result)
}

// ListProductReviews returns one page of a product's reviews
func (h *ReviewHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found", service.CodeNotFound)
		return
	}

	rs, _ := validation.Get(validation.ListQuery)
	params, errs := rs.Validate(queryPayload(r))
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.reviewService.ListProductReviews(r.Context(), productID, intVal(params, "page"), intVal(params, "limit"))
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// GetReview returns a single review by ID
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Review not found", service.CodeNotFound)
		return
	}
	result := h.reviewService.GetReview(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// UpdateReview applies a partial update to a review
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Review not found", service.CodeNotFound)
		return
	}

	payload, errs, err := validatePayload(r, validation.ReviewUpdate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.reviewService.UpdateReview(r.Context(), id, service.UpdateReviewInput{
		Rating:  intPtr(payload, "rating"),
		Title:   strPtr(payload, "title"),
		Comment: strPtr(payload, "comment"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// DeleteReview removes a review
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Review not found", service.CodeNotFound)
		return
	}
	result := h.reviewService.DeleteReview(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}
