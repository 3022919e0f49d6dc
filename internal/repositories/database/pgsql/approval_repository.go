package pgsql

import (
	"context"
	"fmt"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/expenseflow/expense_approval_app/internal/models"
	"github.com/expenseflow/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const approvalColumns = `approval_id, approver_id, expense_id, decision,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(db *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository{Pool: db}}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryFacade
var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

func scanApproval(row pgx.Row) (*models.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID,
		&m.ApproverID,
		&m.ExpenseID,
		&m.Decision,
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

func (r *PgxApprovalRepository) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM approvals
        WHERE expense_id = $1
        ORDER BY created_at ASC;`, approvalColumns)
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	return collectApprovals(rows)
}

func (r *PgxApprovalRepository) FindApprovalsByApproverID(ctx context.Context, approverID string, limit int, offset int) ([]domain.Approval, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM approvals
        WHERE approver_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;`, approvalColumns)
	rows, err := r.Pool.Query(ctx, query, approverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals for approver %s: %w", approverID, err)
	}
	defer rows.Close()

	return collectApprovals(rows)
}

func collectApprovals(rows pgx.Rows) ([]domain.Approval, error) {
	modelApprovals := []models.Approval{}
	for rows.Next() {
		m, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		modelApprovals = append(modelApprovals, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", rows.Err())
	}
	return mapping.ToDomainApprovalSlice(modelApprovals), nil
}
