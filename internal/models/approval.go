package models

// Approval represents a row of the approvals table.
// (approver_id, expense_id) carries a unique constraint.
type Approval struct {
	ApprovalID string `db:"approval_id"`
	ApproverID string `db:"approver_id"`
	ExpenseID  string `db:"expense_id"`
	Decision   string `db:"decision"`
	AuditFields
}
