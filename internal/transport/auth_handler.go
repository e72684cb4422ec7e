package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginResponse carries tokens and the authenticated user
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         interface{} `json:"user"`
}

// RefreshResponse carries a freshly minted access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthHandler handles registration, login, and token lifecycle requests
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.Logout)
			r.Post("/change-password", h.ChangePassword)
		})
	})
}

// Register handles account self-registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.UserRegister)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		h.logger.Debug("Registration validation failed", zap.Int("violations", len(errs)))
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	user, err := h.authService.Register(r.Context(), service.CreateUserInput{
		Email:    strVal(payload, "email"),
		Password: strVal(payload, "password"),
		FullName: strVal(payload, "full_name"),
		Phone:    strVal(payload, "phone"),
		Address:  strVal(payload, "address"),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			middleware.RespondWithError(w, http.StatusConflict, "A user with this email already exists", service.CodeDuplicateEmail)
			return
		}
		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to register user", service.CodeStore)
		return
	}

	h.logger.Info("User registered successfully", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, service.OK("User registered successfully", user))
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, errs, err := validatePayload(r, validation.UserLogin)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(r.Context(), strVal(payload, "email"), strVal(payload, "password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password", service.CodeValidation)
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to log in", service.CodeStore)
		return
	}

	h.logger.Info("User logged in successfully", zap.String("user_id", user.ID))
	middleware.RespondWithJSON(w, http.StatusOK, service.OK("Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}))
}

// Logout revokes the presented refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}

	token, _ := payload["refresh_token"].(string)
	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to log out", service.CodeStore)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, service.OK("Logged out successfully", nil))
}

// RefreshToken mints a new access token from a valid refresh token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}

	token, _ := payload["refresh_token"].(string)
	newAccessToken, err := h.authService.RefreshToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			middleware.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token", service.CodeValidation)
		case errors.Is(err, service.ErrTokenExpired):
			middleware.RespondWithError(w, http.StatusUnauthorized, "Refresh token expired", service.CodeValidation)
		default:
			h.logger.Error("Token refresh failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to refresh token", service.CodeStore)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, service.OK("Token refreshed successfully", RefreshResponse{
		AccessToken: newAccessToken,
	}))
}

// ChangePassword replaces the authenticated user's password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED")
		return
	}

	payload, errs, err := validatePayload(r, validation.UserChangePassword)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body", service.CodeValidation)
		return
	}
	if errs != nil {
		middleware.RespondWithValidationErrors(w, errs)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, strVal(payload, "new_password")); err != nil {
		h.logger.Error("Password change failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Unable to change password", service.CodeStore)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, service.OK("Password changed successfully", nil))
}
