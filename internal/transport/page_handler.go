package transport

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var usersTemplate = template.Must(template.ParseFS(templateFS, "templates/users.html"))

// usersPageData is the model for the user management page
type usersPageData struct {
	Users   []*domain.User
	Error   string
	Success string
}

// PageHandler serves the server-rendered management pages. Unlike the JSON
// API it reports outcomes through redirects carrying flash messages in the
// query string.
type PageHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(userService service.UserService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the page routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.UsersPage)
	r.Post("/users", h.CreateUserForm)
	r.Post("/users/"+userIDPattern+"/delete", h.DeleteUserForm)
}

// UsersPage renders the user list with any flash message from the query
// string
func (h *PageHandler) UsersPage(w http.ResponseWriter, r *http.Request) {
	data := usersPageData{
		Error:   r.URL.Query().Get("error"),
		Success: r.URL.Query().Get("success"),
	}

	result := h.userService.ListUsers(r.Context())
	if result.Success {
		if users, ok := result.Data.([]*domain.User); ok {
			data.Users = users
		}
	} else {
		data.Error = result.Message
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := usersTemplate.Execute(w, data); err != nil {
		h.logger.Error("Failed to render users page", zap.Error(err))
	}
}

// CreateUserForm handles the add-user form submission and redirects back to
// the page with the outcome
func (h *PageHandler) CreateUserForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "Invalid form submission")
		return
	}

	payload := make(map[string]interface{}, len(r.PostForm))
	for key := range r.PostForm {
		if v := r.PostForm.Get(key); v != "" {
			payload[key] = v
		}
	}

	rs, _ := validation.Get(validation.UserRegister)
	normalized, errs := rs.Validate(payload)
	if errs != nil {
		// The page shows one message at a time; the first violation wins
		redirectWithError(w, r, errs[0].Field+": "+errs[0].Message)
		return
	}

	result := h.userService.CreateUser(r.Context(), service.CreateUserInput{
		Email:    strVal(normalized, "email"),
		Password: strVal(normalized, "password"),
		FullName: strVal(normalized, "full_name"),
		Phone:    strVal(normalized, "phone"),
		Address:  strVal(normalized, "address"),
	})
	if !result.Success {
		redirectWithError(w, r, result.Message)
		return
	}

	redirectWithSuccess(w, r, result.Message)
}

// DeleteUserForm handles the delete button and redirects back with the
// outcome
func (h *PageHandler) DeleteUserForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := h.userService.DeleteUser(r.Context(), id)
	if !result.Success {
		redirectWithError(w, r, result.Message)
		return
	}

	redirectWithSuccess(w, r, result.Message)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/users?error="+url.QueryEscape(message), http.StatusSeeOther)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/users?success="+url.QueryEscape(message), http.StatusSeeOther)
}
