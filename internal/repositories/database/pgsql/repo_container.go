package pgsql

import (
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	approvalRepo := newPgxApprovalRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		ExpenseRepo:  expenseRepo,
		ApprovalRepo: approvalRepo,
		CurrencyRepo: currencyRepo,
	}
}
