package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret-key"

func newAuthServiceForTest() (AuthService, *mockUserRepository, *mockRefreshTokenRepository) {
	userRepo := newMockUserRepository()
	roleRepo := newMockRoleRepository()
	refreshTokenRepo := newMockRefreshTokenRepository()
	return NewAuthService(userRepo, roleRepo, refreshTokenRepo, testJWTSecret), userRepo, refreshTokenRepo
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	user, err := svc.Register(context.Background(), CreateUserInput{
		Email:    "jane@example.com",
		Password: "secret1",
		FullName: "Jane Doe",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.RoleID != 2 {
		t.Errorf("expected customer role ID 2, got %d", user.RoleID)
	}
	if !domain.IsUserID(user.ID) {
		t.Errorf("expected 24-hex user ID, got %q", user.ID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	input := CreateUserInput{Email: "dup@example.com", Password: "secret1", FullName: "Jane Doe"}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, input)
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	registered, err := svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	accessToken, refreshToken, user, err := svc.Login(ctx, "jane@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if user.ID != registered.ID {
		t.Error("login returned a different user")
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("claims carry wrong user ID %q", claims.UserID)
	}
	if claims.Role != "customer" {
		t.Errorf("claims carry wrong role %q", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})

	if _, _, _, err := svc.Login(ctx, "jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})
	_, refreshToken, _, err := svc.Login(ctx, "jane@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	newAccess, err := svc.RefreshToken(ctx, refreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := svc.ValidateToken(newAccess); err != nil {
		t.Errorf("refreshed token does not validate: %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})
	_, refreshToken, _, _ := svc.Login(ctx, "jane@example.com", "secret1")

	if err := svc.Logout(ctx, refreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, refreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("revoked token must be rejected, got %v", err)
	}

	// Logging out an already revoked token is a no-op
	if err := svc.Logout(ctx, refreshToken); err != nil {
		t.Errorf("repeated logout should not fail: %v", err)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, _, tokenRepo := newAuthServiceForTest()
	ctx := context.Background()

	registered, _ := svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})

	tokenRepo.Create(ctx, &domain.RefreshToken{
		ID:        "expired-token-id",
		UserID:    registered.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	})

	if _, err := svc.RefreshToken(ctx, "expired-token"); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()

	if _, err := svc.ValidateToken("not-a-jwt"); err == nil {
		t.Error("garbage token must be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthServiceForTest()
	ctx := context.Background()

	registered, _ := svc.Register(ctx, CreateUserInput{Email: "jane@example.com", Password: "secret1", FullName: "Jane Doe"})

	if err := svc.ChangePassword(ctx, registered.ID, "newsecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "jane@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted")
	}
	if _, _, _, err := svc.Login(ctx, "jane@example.com", "newsecret"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
