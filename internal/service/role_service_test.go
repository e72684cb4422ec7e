package service

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"

	"go.uber.org/zap"
)

func newRoleServiceForTest() (RoleService, *mockRoleRepository, *mockUserRepository) {
	roleRepo := newMockRoleRepository()
	userRepo := newMockUserRepository()
	return NewRoleService(roleRepo, userRepo, zap.NewNop()), roleRepo, userRepo
}

func TestCreateAndGetRole(t *testing.T) {
	svc, _, _ := newRoleServiceForTest()
	ctx := context.Background()

	created := svc.CreateRole(ctx, RoleInput{Name: "editor", Description: "Catalog editor"})
	if !created.Success {
		t.Fatalf("create failed: %+v", created)
	}
	role := created.Data.(*domain.Role)

	got := svc.GetRole(ctx, role.ID)
	if !got.Success {
		t.Fatalf("get failed: %+v", got)
	}
	if got.Data.(*domain.Role).Name != "editor" {
		t.Errorf("unexpected role name %q", got.Data.(*domain.Role).Name)
	}
}

func TestCreateRoleDuplicateName(t *testing.T) {
	svc, _, _ := newRoleServiceForTest()

	result := svc.CreateRole(context.Background(), RoleInput{Name: "admin"})
	if result.Success {
		t.Fatal("duplicate role name must fail")
	}
	if result.Error != CodeValidation {
		t.Errorf("expected %s, got %s", CodeValidation, result.Error)
	}
}

func TestDeleteRoleGuardedByReferences(t *testing.T) {
	svc, roleRepo, userRepo := newRoleServiceForTest()
	ctx := context.Background()

	// Two users still hold the customer role
	for _, id := range []string{"0123456789abcdef01234567", "89abcdef0123456789abcdef"} {
		userRepo.users[id] = &domain.User{ID: id, Email: id + "@example.com", RoleID: 2}
	}

	result := svc.DeleteRole(ctx, 2)
	if result.Success {
		t.Fatal("role with active references must not be deleted")
	}
	if result.Error != CodeRoleInUse {
		t.Errorf("expected %s, got %s", CodeRoleInUse, result.Error)
	}
	if !strings.Contains(result.Message, "2 active user(s)") {
		t.Errorf("message should carry the reference count, got %q", result.Message)
	}
	if _, err := roleRepo.FindByID(ctx, 2); err != nil {
		t.Error("guarded role must be left intact")
	}
}

func TestDeleteRoleWithoutReferences(t *testing.T) {
	svc, roleRepo, _ := newRoleServiceForTest()
	ctx := context.Background()

	result := svc.DeleteRole(ctx, 2)
	if !result.Success {
		t.Fatalf("delete failed: %+v", result)
	}
	if _, err := roleRepo.FindByID(ctx, 2); err == nil {
		t.Error("role should be gone")
	}
}

func TestDeleteRoleNotFound(t *testing.T) {
	svc, _, _ := newRoleServiceForTest()

	result := svc.DeleteRole(context.Background(), 999)
	if result.Success || result.Error != CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %+v", result)
	}
}

func TestUpdateRolePartial(t *testing.T) {
	svc, _, _ := newRoleServiceForTest()
	ctx := context.Background()

	desc := "Elevated access"
	result := svc.UpdateRole(ctx, 1, UpdateRoleInput{Description: &desc})
	if !result.Success {
		t.Fatalf("update failed: %+v", result)
	}
	role := result.Data.(*domain.Role)
	if role.Name != "admin" {
		t.Errorf("untouched name changed: %q", role.Name)
	}
	if role.Description != "Elevated access" {
		t.Errorf("description not updated: %q", role.Description)
	}
}
