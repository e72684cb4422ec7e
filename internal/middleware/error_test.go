package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/service"
	"storefront/internal/validation"

	"go.uber.org/zap"
)

func TestRespondWithErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "User not found", service.CodeNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var envelope service.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if envelope.Success {
		t.Error("failure envelope claims success")
	}
	if envelope.Message != "User not found" {
		t.Errorf("unexpected message %q", envelope.Message)
	}
	if envelope.Error != service.CodeNotFound {
		t.Errorf("unexpected code %q", envelope.Error)
	}
	if envelope.Data != nil {
		t.Error("failure envelope must not carry data")
	}
}

func TestRespondWithValidationErrorsShape(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithValidationErrors(rec, validation.Errors{
		{Field: "email", Message: "This field is required", Value: nil},
		{Field: "price", Message: "Must be a positive number", Value: -5},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field   string      `json:"field"`
			Message string      `json:"message"`
			Value   interface{} `json:"value"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body.Success {
		t.Error("validation envelope claims success")
	}
	if body.Message != "Validation failed" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected both violations, got %d", len(body.Errors))
	}
	if body.Errors[1].Field != "price" || body.Errors[1].Value != float64(-5) {
		t.Errorf("violation not echoed faithfully: %+v", body.Errors[1])
	}
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		service.CodeNotFound:       http.StatusNotFound,
		service.CodeDuplicateEmail: http.StatusConflict,
		service.CodeRoleInUse:      http.StatusConflict,
		service.CodeValidation:     http.StatusBadRequest,
		service.CodeStore:          http.StatusInternalServerError,
		"SOMETHING_ELSE":           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusForCode(code); got != want {
			t.Errorf("StatusForCode(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestRespondWithResultUsesOutcomeStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithResult(rec, http.StatusCreated, service.OK("User created successfully", map[string]string{"id": "abc"}))
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for success, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RespondWithResult(rec, http.StatusOK, service.Fail("A user with this email already exists", service.CodeDuplicateEmail))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}

	var envelope service.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("panic response is not valid JSON: %v", err)
	}
	if envelope.Success || envelope.Error != service.CodeStore {
		t.Errorf("unexpected envelope %+v", envelope)
	}
}
