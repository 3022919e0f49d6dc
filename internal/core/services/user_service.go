package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/core/policy"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/utils"
)

// userService implements user directory, registration and authentication.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to get user by ID", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to get user by email")
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor portssvc.Actor, limit, offset int) ([]domain.User, error) {
	if !policy.Allow(actor.Role, policy.ActionManageUsers) {
		return nil, apperrors.ErrForbidden
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// Register creates a self-registered account. The very first account in the
// system becomes ADMIN so there is always someone who can manage users;
// everyone after that starts as EMPLOYEE.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to count users during registration")
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	role := domain.RoleEmployee
	if count == 0 {
		role = domain.RoleAdmin
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:              newUserID,
		Name:                req.Name,
		Email:               req.Email,
		PasswordHash:        hash,
		Role:                role,
		Status:              domain.StatusActive,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		AuthProvider:        domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "failed to save registered user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "user registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// CreateManagedUser creates an account on behalf of an admin. The role comes
// from the request and may be EMPLOYEE or MANAGER; ADMIN accounts can only
// arise through first registration.
func (s *userService) CreateManagedUser(ctx context.Context, actor portssvc.Actor, req dto.CreateManagedUserRequest) (*domain.User, error) {
	if !policy.Allow(actor.Role, policy.ActionManageUsers) {
		return nil, apperrors.ErrForbidden
	}
	if req.Role == domain.RoleAdmin || !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role must be EMPLOYEE or MANAGER")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password for managed user")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:              uuid.NewString(),
		Name:                req.Name,
		Email:               req.Email,
		PasswordHash:        hash,
		Role:                req.Role,
		Status:              domain.StatusActive,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		AuthProvider:        domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "failed to save managed user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "managed user created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)),
		slog.String("created_by", actor.UserID))
	return &user, nil
}

// SetRole changes a user's role. Admin accounts and the actor's own account
// are off limits, and nobody can be promoted to ADMIN this way.
func (s *userService) SetRole(ctx context.Context, actor portssvc.Actor, targetUserID string, newRole domain.UserRole) (*domain.User, error) {
	if !policy.Allow(actor.Role, policy.ActionManageUsers) {
		return nil, apperrors.ErrForbidden
	}
	if newRole == domain.RoleAdmin || !newRole.IsValid() {
		return nil, apperrors.NewValidationError("role must be EMPLOYEE or MANAGER")
	}
	if targetUserID == actor.UserID {
		return nil, fmt.Errorf("%w: cannot change own role", apperrors.ErrForbidden)
	}

	target, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load user for role change", slog.String("user_id", targetUserID))
		return nil, fmt.Errorf("failed to load user %s: %w", targetUserID, err)
	}
	if target.Role == domain.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot change an admin's role", apperrors.ErrForbidden)
	}

	target.Role = newRole
	target.LastUpdatedAt = time.Now()
	target.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *target); err != nil {
		s.LogError(ctx, err, "failed to update user role", slog.String("user_id", targetUserID))
		return nil, fmt.Errorf("failed to update user %s: %w", targetUserID, err)
	}

	s.LogInfo(ctx, "user role changed",
		slog.String("user_id", targetUserID),
		slog.String("new_role", string(newRole)),
		slog.String("changed_by", actor.UserID))
	return target, nil
}

// DeleteUser soft deletes a user. Admin accounts and the actor's own account
// cannot be deleted.
func (s *userService) DeleteUser(ctx context.Context, actor portssvc.Actor, targetUserID string) error {
	if !policy.Allow(actor.Role, policy.ActionManageUsers) {
		return apperrors.ErrForbidden
	}
	if targetUserID == actor.UserID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrForbidden)
	}

	target, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "failed to load user for deletion", slog.String("user_id", targetUserID))
		return fmt.Errorf("failed to load user %s: %w", targetUserID, err)
	}
	if target.Role == domain.RoleAdmin {
		return fmt.Errorf("%w: cannot delete an admin account", apperrors.ErrForbidden)
	}

	if err := s.userRepo.MarkUserDeleted(ctx, targetUserID, time.Now(), actor.UserID); err != nil {
		s.LogError(ctx, err, "failed to mark user deleted", slog.String("user_id", targetUserID))
		return fmt.Errorf("failed to delete user %s: %w", targetUserID, err)
	}

	s.LogInfo(ctx, "user deleted", slog.String("user_id", targetUserID), slog.String("deleted_by", actor.UserID))
	return nil
}

// AuthenticateUser verifies email/password credentials. All failure modes
// collapse into ErrUnauthorized so login responses do not leak which part
// was wrong.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "failed to look up user during authentication")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.Status != domain.StatusActive {
		s.LogInfo(ctx, "login rejected for inactive user", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// FindOrCreateExternalUser resolves an externally authenticated identity to
// a local account. First sign-in creates an ACTIVE EMPLOYEE account with no
// password.
func (s *userService) FindOrCreateExternalUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, provider, providerUserID)
	if err == nil {
		if user.Status != domain.StatusActive {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to look up external user")
		return nil, fmt.Errorf("failed to look up external user: %w", err)
	}

	// An account with the same email may already exist from local
	// registration. Link it rather than creating a duplicate.
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		existing.AuthProvider = provider
		existing.ProviderUserID = providerUserID
		existing.LastUpdatedAt = time.Now()
		existing.LastUpdatedBy = existing.UserID
		if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
			s.LogError(ctx, err, "failed to link external identity", slog.String("user_id", existing.UserID))
			return nil, fmt.Errorf("failed to link external identity: %w", err)
		}
		if existing.Status != domain.StatusActive {
			return nil, apperrors.ErrUnauthorized
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to look up user by email for external sign-in")
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	newUser := domain.User{
		UserID:              newUserID,
		Name:                name,
		Email:               email,
		Role:                domain.RoleEmployee,
		Status:              domain.StatusActive,
		DefaultCurrencyCode: "USD",
		AuthProvider:        provider,
		ProviderUserID:      providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "failed to create external user")
		return nil, fmt.Errorf("failed to create external user: %w", err)
	}

	s.LogInfo(ctx, "external user created", slog.String("user_id", newUser.UserID), slog.String("provider", string(provider)))
	return &newUser, nil
}
