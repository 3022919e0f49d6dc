package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/expenseflow/expense_approval_app/internal/models"
	"github.com/expenseflow/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, user_id, amount, currency_code, description, expense_date, status,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.ExpenseDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, user_id, amount, currency_code, description, expense_date, status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.UserID,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.ExpenseDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save expense "+m.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE expense_id = $1;`, expenseColumns)
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	e := mapping.ToDomainExpense(*m)
	return &e, nil
}

func (r *PgxExpenseRepository) FindExpensesByUserID(ctx context.Context, userID string, limit int, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM expenses
        WHERE user_id = $1
        ORDER BY expense_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;`, expenseColumns)
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, status *domain.ExpenseStatus, limit int, offset int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM expenses
        WHERE ($1::text IS NULL OR status = $1)
        ORDER BY expense_date DESC, created_at DESC
        LIMIT $2 OFFSET $3;`, expenseColumns)

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	modelExpenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

// ApplyDecision upserts the approval row and moves the expense status in a
// single transaction. Two managers deciding concurrently serialize on the
// expense row update; the expense status can never diverge from its
// approval set.
func (r *PgxExpenseRepository) ApplyDecision(ctx context.Context, approval domain.Approval, newStatus domain.ExpenseStatus) error {
	m := mapping.ToModelApproval(approval)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	approvalQuery := `
        INSERT INTO approvals (approval_id, approver_id, expense_id, decision,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (approver_id, expense_id) DO UPDATE SET
            decision = EXCLUDED.decision,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err = tx.Exec(ctx, approvalQuery,
		m.ApprovalID,
		m.ApproverID,
		m.ExpenseID,
		m.Decision,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert approval for expense "+m.ExpenseID, err)
	}

	// The status guard repeats inside the transaction so a decision that
	// raced another one loses cleanly instead of overwriting it.
	statusQuery := `
        UPDATE expenses
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE expense_id = $4 AND status = $5;
    `
	cmdTag, err := tx.Exec(ctx, statusQuery,
		string(newStatus),
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ExpenseID,
		string(domain.ExpensePending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for expense "+m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStateConflict
	}

	return r.Commit(ctx, tx)
}
