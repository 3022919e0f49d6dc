package domain

import "time"

// UserRole defines the application-wide role of a user account.
type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// UserStatus defines whether an account may sign in.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

// AuthProvider identifies how the account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID               string       `json:"userID"` // Primary Key (UUID)
	Name                 string       `json:"name"`
	Email                string       `json:"email"` // Unique
	PasswordHash         string       `json:"-"`     // Empty for external auth providers
	Role                 UserRole     `json:"role"`
	Status               UserStatus   `json:"status"`
	DefaultCurrencyCode  string       `json:"defaultCurrencyCode"`
	AuthProvider         AuthProvider `json:"authProvider"`
	ProviderUserID       string       `json:"-"` // External subject ID when AuthProvider != LOCAL
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
