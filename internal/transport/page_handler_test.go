package transport

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newPageRouter(svc service.UserService) chi.Router {
	r := chi.NewRouter()
	NewPageHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestUsersPageRendersList(t *testing.T) {
	svc := &stubUserService{listResult: service.OK("Users retrieved successfully", []*domain.User{
		{ID: "0123456789abcdef01234567", Email: "jane@example.com", FullName: "Jane Doe"},
	})}
	router := newPageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected HTML, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "jane@example.com") {
		t.Error("rendered page does not show the user")
	}
}

func TestUsersPageShowsFlashMessages(t *testing.T) {
	svc := &stubUserService{listResult: service.OK("Users retrieved successfully", []*domain.User{})}
	router := newPageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/users?error="+url.QueryEscape("email: This field is required"), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "This field is required") {
		t.Error("error flash not rendered")
	}

	req = httptest.NewRequest(http.MethodGet, "/users?success="+url.QueryEscape("User created successfully"), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "User created successfully") {
		t.Error("success flash not rendered")
	}
}

func TestCreateUserFormRedirectsWithSuccess(t *testing.T) {
	svc := &stubUserService{createResult: service.OK("User created successfully", nil)}
	router := newPageRouter(svc)

	form := url.Values{
		"email":            {"jane@example.com"},
		"password":         {"secret1"},
		"confirm_password": {"secret1"},
		"full_name":        {"Jane Doe"},
	}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "success=") {
		t.Errorf("expected success flash in redirect, got %q", location)
	}
	if svc.lastCreateInput.Email != "jane@example.com" {
		t.Errorf("service received wrong input %+v", svc.lastCreateInput)
	}
}

func TestCreateUserFormRedirectsWithFirstViolation(t *testing.T) {
	svc := &stubUserService{}
	router := newPageRouter(svc)

	form := url.Values{"full_name": {"Jane Doe"}}
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "error=") {
		t.Errorf("expected error flash in redirect, got %q", location)
	}
	if svc.createCalls != 0 {
		t.Error("service must not be called on invalid input")
	}
}

func TestDeleteUserFormRedirectsWithOutcome(t *testing.T) {
	svc := &stubUserService{deleteResult: service.Fail("User not found", service.CodeNotFound)}
	router := newPageRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/users/0123456789abcdef01234567/delete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "error=") {
		t.Errorf("expected error flash, got %q", rec.Header().Get("Location"))
	}

	svc.deleteResult = service.OK("User deleted successfully", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/0123456789abcdef01234567/delete", nil))
	if !strings.Contains(rec.Header().Get("Location"), "success=") {
		t.Errorf("expected success flash, got %q", rec.Header().Get("Location"))
	}
}
