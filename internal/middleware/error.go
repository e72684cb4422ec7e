package middleware

import (
	"encoding/json"
	"net/http"

	"storefront/internal/service"
	"storefront/internal/validation"

	"go.uber.org/zap"
)

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithError sends a failure envelope with a classification code
func RespondWithError(w http.ResponseWriter, statusCode int, message, code string) {
	RespondWithJSON(w, statusCode, service.Fail(message, code))
}

// ValidationErrorResponse is the envelope for rule violations. It carries
// every violation found in the payload, not just the first one.
type ValidationErrorResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

// RespondWithValidationErrors sends a 400 with the full list of violations
func RespondWithValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	RespondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// StatusForCode maps an envelope error code to an HTTP status
func StatusForCode(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeDuplicateEmail, service.CodeRoleInUse:
		return http.StatusConflict
	case service.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithResult writes an envelope as-is, choosing the HTTP status from
// its outcome. successStatus is used when the envelope reports success.
func RespondWithResult(w http.ResponseWriter, successStatus int, result service.Result) {
	if result.Success {
		RespondWithJSON(w, successStatus, result)
		return
	}
	RespondWithJSON(w, StatusForCode(result.Error), result)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 envelopes
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "Internal server error", service.CodeStore)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
