package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// userIDPattern constrains user routes to 24-character hex identifiers, so
// malformed IDs fall out as 404s before any handler runs.
const userIDPattern = "{id:[0-9a-fA-F]{24}}"

// UserHandler handles HTTP requests for user CRUD operations
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/"+userIDPattern, h.GetUser)
		r.Put("/"+userIDPattern, h.UpdateUser)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Post("/", h.CreateUser)
			r.Get("/", h.ListUsers)
			r.Delete("/"+userIDPattern, h.DeleteUser)
		})
	})
}

// CreateUser handles user creation by an administrator
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.UserRegister)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.userService.CreateUser(r.Context(), service.CreateUserInput{
		Email:    strVal(payload, "email"),
		Password: strVal(payload, "password"),
		FullName: strVal(payload, "full_name"),
		Phone:    strVal(payload, "phone"),
		Address:  strVal(payload, "address"),
		RoleID:   int64Val(payload, "role_id"),
	})
	middleware.RespondWithResult(w, http.StatusCreated, result)
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	result := h.userService.ListUsers(r.Context())
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result := h.userService.GetUser(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payload, errs, err := validatePayload(r, validation.UserUpdate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.userService.UpdateUser(r.Context(), id, service.UpdateUserInput{
		Email:    strPtr(payload, "email"),
		FullName: strPtr(payload, "full_name"),
		Phone:    strPtr(payload, "phone"),
		Address:  strPtr(payload, "address"),
		RoleID:   int64Ptr(payload, "role_id"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result := h.userService.DeleteUser(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}
