package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// Actor identifies the principal performing a service operation.
type Actor struct {
	UserID string
	Role   domain.UserRole
}

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users. Admin only.
	ListUsers(ctx context.Context, actor Actor, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a self-registered account. The first account ever
	// created becomes ADMIN; every later one is EMPLOYEE.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateManagedUser creates an account on an admin's behalf, ACTIVE
	// immediately, with a role of EMPLOYEE or MANAGER.
	CreateManagedUser(ctx context.Context, actor Actor, req dto.CreateManagedUserRequest) (*domain.User, error)

	// SetRole changes a user's role. The target may not be an ADMIN or the
	// actor themselves, and the new role may not be ADMIN.
	SetRole(ctx context.Context, actor Actor, targetUserID string, newRole domain.UserRole) (*domain.User, error)

	// FindOrCreateExternalUser resolves an externally authenticated identity
	// to a local account, creating an EMPLOYEE account on first sign-in.
	FindOrCreateExternalUser(ctx context.Context, provider domain.AuthProvider, providerUserID, email, name string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete). Same guards as SetRole.
	DeleteUser(ctx context.Context, actor Actor, targetUserID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	// Returns apperrors.ErrUnauthorized for unknown email, wrong password,
	// or an inactive account.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
