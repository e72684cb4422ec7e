package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleHandler handles HTTP requests for role administration
type RoleHandler struct {
	roleService service.RoleService
	logger      *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService service.RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// RegisterRoutes registers all role routes; the whole surface is admin-only
func (h *RoleHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/roles", func(r chi.Router) {
		r.Use(authMiddleware, adminMiddleware)

		r.Post("/", h.CreateRole)
		r.Get("/", h.ListRoles)
		r.Get("/"+numericIDPattern, h.GetRole)
		r.Put("/"+numericIDPattern, h.UpdateRole)
		r.Delete("/"+numericIDPattern, h.DeleteRole)
	})
}

// CreateRole handles role creation
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.RoleCreate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.roleService.CreateRole(r.Context(), service.RoleInput{
		Name:        strVal(payload, "name"),
		Description: strVal(payload, "description"),
	})
	middleware.RespondWithResult(w, http.StatusCreated, result)
}

// ListRoles returns all roles
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	result := h.roleService.ListRoles(r.Context())
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// GetRole returns a single role by ID
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Role not found", service.CodeNotFound)
		return
	}
	result := h.roleService.GetRole(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// UpdateRole applies a partial update to a role
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Role not found", service.CodeNotFound)
		return
	}

	payload, errs, err := validatePayload(r, validation.RoleUpdate)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	result := h.roleService.UpdateRole(r.Context(), id, service.UpdateRoleInput{
		Name:        strPtr(payload, "name"),
		Description: strPtr(payload, "description"),
	})
	middleware.RespondWithResult(w, http.StatusOK, result)
}

// DeleteRole removes a role unless users still reference it
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Role not found", service.CodeNotFound)
		return
	}
	result := h.roleService.DeleteRole(r.Context(), id)
	middleware.RespondWithResult(w, http.StatusOK, result)
}
