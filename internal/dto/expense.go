package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to submit a new expense.
// CurrencyCode is optional; when omitted the owner's default currency is
// used. Date accepts "2006-01-02" or RFC 3339.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currency" binding:"omitempty,currencycode"`
	Description  string          `json:"description" binding:"required"`
	Date         string          `json:"date" binding:"required"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status *domain.ExpenseStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Limit  int                   `form:"limit,default=20"`
	Offset int                   `form:"offset,default=0"`
}

// ExpenseResponse defines the expense data returned to clients.
type ExpenseResponse struct {
	ExpenseID    string               `json:"expenseID"`
	UserID       string               `json:"userID"`
	Amount       decimal.Decimal      `json:"amount"`
	CurrencyCode string               `json:"currencyCode"`
	Description  string               `json:"description"`
	ExpenseDate  time.Time            `json:"expenseDate"`
	Status       domain.ExpenseStatus `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		UserID:       e.UserID,
		Amount:       e.Amount,
		CurrencyCode: e.CurrencyCode,
		Description:  e.Description,
		ExpenseDate:  e.ExpenseDate,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToListExpensesResponse converts a slice of domain.Expense to ListExpensesResponse DTO
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Expenses: responses}
}
