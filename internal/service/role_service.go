package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// RoleService is the entity access facade for roles
type RoleService interface {
	CreateRole(ctx context.Context, input RoleInput) Result
	ListRoles(ctx context.Context) Result
	GetRole(ctx context.Context, id int64) Result
	UpdateRole(ctx context.Context, id int64, input UpdateRoleInput) Result
	DeleteRole(ctx context.Context, id int64) Result
}

// RoleInput carries a validated role creation payload
type RoleInput struct {
	Name        string
	Description string
}

// UpdateRoleInput carries a partial role update
type UpdateRoleInput struct {
	Name        *string
	Description *string
}

type roleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewRoleService creates a new instance of RoleService
func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository, logger *zap.Logger) RoleService {
	return &roleService{roleRepo: roleRepo, userRepo: userRepo, logger: logger}
}

// CreateRole creates a new role
func (s *roleService) CreateRole(ctx context.Context, input RoleInput) Result {
	now := time.Now()
	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicateRole) {
			return Fail("A role with this name already exists", CodeValidation)
		}
		s.logger.Error("Failed to create role", zap.Error(err))
		return Fail("Unable to create role", CodeStore)
	}

	return OK("Role created successfully", role)
}

// ListRoles returns all roles
func (s *roleService) ListRoles(ctx context.Context) Result {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list roles", zap.Error(err))
		return Fail("Unable to list roles", CodeStore)
	}
	return OK("Roles retrieved successfully", roles)
}

// GetRole looks up a role by identifier
func (s *roleService) GetRole(ctx context.Context, id int64) Result {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return Fail("Role not found", CodeNotFound)
		}
		s.logger.Error("Failed to get role", zap.Error(err))
		return Fail("Unable to get role", CodeStore)
	}
	return OK("Role retrieved successfully", role)
}

// UpdateRole applies only the provided fields and returns the post-update
// record
func (s *roleService) UpdateRole(ctx context.Context, id int64, input UpdateRoleInput) Result {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return Fail("Role not found", CodeNotFound)
		}
		s.logger.Error("Failed to load role for update", zap.Error(err))
		return Fail("Unable to update role", CodeStore)
	}

	if input.Name != nil {
		role.Name = *input.Name
	}
	if input.Description != nil {
		role.Description = *input.Description
	}
	role.UpdatedAt = time.Now()

	if err := s.roleRepo.Update(ctx, role); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleNotFound):
			return Fail("Role not found", CodeNotFound)
		case errors.Is(err, repository.ErrDuplicateRole):
			return Fail("A role with this name already exists", CodeValidation)
		}
		s.logger.Error("Failed to update role", zap.Error(err))
		return Fail("Unable to update role", CodeStore)
	}

	return OK("Role updated successfully", role)
}

// DeleteRole deletes a role unless any active user still references it.
// The reference count check runs before the delete is issued, so a guarded
// role is left intact.
func (s *roleService) DeleteRole(ctx context.Context, id int64) Result {
	count, err := s.userRepo.CountByRole(ctx, id)
	if err != nil {
		s.logger.Error("Failed to count role references", zap.Error(err))
		return Fail("Unable to delete role", CodeStore)
	}
	if count > 0 {
		msg := fmt.Sprintf("Cannot delete role: %d active user(s) still reference it", count)
		return Fail(msg, CodeRoleInUse)
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return Fail("Role not found", CodeNotFound)
		}
		s.logger.Error("Failed to delete role", zap.Error(err))
		return Fail("Unable to delete role", CodeStore)
	}

	return OK("Role deleted successfully", nil)
}
