package mapping

import (
	"database/sql"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:              d.UserID,
		Name:                d.Name,
		Email:               d.Email,
		Role:                string(d.Role),
		Status:              string(d.Status),
		DefaultCurrencyCode: d.DefaultCurrencyCode,
		AuthProvider:        string(d.AuthProvider),
		AuditFields:         ToModelAuditFields(d.AuditFields),
		DeletedAt:           d.DeletedAt,
	}
	if d.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: d.PasswordHash, Valid: true}
	}
	if d.ProviderUserID != "" {
		m.ProviderUserID = sql.NullString{String: d.ProviderUserID, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:              m.UserID,
		Name:                m.Name,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash.String,
		Role:                domain.UserRole(m.Role),
		Status:              domain.UserStatus(m.Status),
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		AuthProvider:        domain.AuthProvider(m.AuthProvider),
		ProviderUserID:      m.ProviderUserID.String,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		DeletedAt:           m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
