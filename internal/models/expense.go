package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID    string          `db:"expense_id"`
	UserID       string          `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	Description  string          `db:"description"`
	ExpenseDate  time.Time       `db:"expense_date"`
	Status       string          `db:"status"`
	AuditFields
}
