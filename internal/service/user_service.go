package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// UserService is the entity access facade for users. Every operation
// returns a Result envelope.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) Result
	ListUsers(ctx context.Context) Result
	GetUser(ctx context.Context, id string) Result
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) Result
	DeleteUser(ctx context.Context, id string) Result
}

// CreateUserInput carries a validated registration payload
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
	RoleID   int64
}

// UpdateUserInput carries a partial update; nil fields are left untouched
type UpdateUserInput struct {
	Email    *string
	FullName *string
	Phone    *string
	Address  *string
	RoleID   *int64
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, roleRepo: roleRepo, logger: logger}
}

// CreateUser creates a user after an advisory duplicate-email check. The
// pre-check is a fast path only: two racing creates can both pass it, and
// the store's unique index on email is what actually guarantees uniqueness.
func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) Result {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return Fail("Unable to create user", CodeStore)
	}
	if existing != nil {
		return Fail("A user with this email already exists", CodeDuplicateEmail)
	}

	roleID := input.RoleID
	if roleID == 0 {
		role, err := s.roleRepo.FindByName(ctx, DefaultRoleName)
		if err != nil {
			s.logger.Error("Failed to resolve default role", zap.Error(err))
			return Fail("Unable to create user", CodeStore)
		}
		roleID = role.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return Fail("Unable to create user", CodeStore)
	}

	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(),
		Email:        input.Email,
		PasswordHash: string(hashed),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Address:      input.Address,
		RoleID:       roleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return Fail("A user with this email already exists", CodeDuplicateEmail)
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return Fail("Unable to create user", CodeStore)
	}

	return OK("User created successfully", user)
}

// ListUsers returns all users, newest first
func (s *userService) ListUsers(ctx context.Context) Result {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return Fail("Unable to list users", CodeStore)
	}
	return OK("Users retrieved successfully", users)
}

// GetUser looks up a user by identifier
func (s *userService) GetUser(ctx context.Context, id string) Result {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail("User not found", CodeNotFound)
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return Fail("Unable to get user", CodeStore)
	}
	return OK("User retrieved successfully", user)
}

// UpdateUser applies only the provided fields and returns the post-update
// record
func (s *userService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) Result {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail("User not found", CodeNotFound)
		}
		s.logger.Error("Failed to load user for update", zap.Error(err))
		return Fail("Unable to update user", CodeStore)
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.RoleID != nil {
		user.RoleID = *input.RoleID
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return Fail("User not found", CodeNotFound)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return Fail("A user with this email already exists", CodeDuplicateEmail)
		}
		s.logger.Error("Failed to update user", zap.Error(err))
		return Fail("Unable to update user", CodeStore)
	}

	return OK("User updated successfully", user)
}

// DeleteUser hard-deletes a user; no data is returned
func (s *userService) DeleteUser(ctx context.Context, id string) Result {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Fail("User not found", CodeNotFound)
		}
		s.logger.Error("Failed to delete user", zap.Error(err))
		return Fail("Unable to delete user", CodeStore)
	}
	return OK("User deleted successfully", nil)
}
