package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the visible lifecycle state of an expense.
// PENDING is the only state a decision may be taken from; APPROVED and
// REJECTED are terminal.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

// IsTerminal reports whether no further decisions are legal for this status.
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseApproved || s == ExpenseRejected
}

// Expense represents a single expense report owned by a user.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`    // Owner, FK -> users.user_id
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Status       ExpenseStatus   `json:"status"`
	AuditFields
}
