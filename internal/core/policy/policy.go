// Package policy is the single access-control table for the application.
// Every boundary consults Allow exactly once instead of scattering role
// string comparisons across handlers.
package policy

import "github.com/expenseflow/expense_approval_app/internal/core/domain"

// Action names a protected operation.
type Action string

const (
	ActionCreateExpense   Action = "expense:create"
	ActionListOwnExpenses Action = "expense:list_own"
	ActionListAllExpenses Action = "expense:list_all"
	ActionDecideApproval  Action = "approval:decide"
	ActionManageUsers     Action = "user:manage"
)

// allowed maps role x action -> permission. Anything absent is denied.
var allowed = map[domain.UserRole]map[Action]bool{
	domain.RoleEmployee: {
		ActionCreateExpense:   true,
		ActionListOwnExpenses: true,
	},
	domain.RoleManager: {
		ActionListOwnExpenses: true,
		ActionListAllExpenses: true,
		ActionDecideApproval:  true,
	},
	domain.RoleAdmin: {
		ActionListOwnExpenses: true,
		ActionListAllExpenses: true,
		ActionDecideApproval:  true,
		ActionManageUsers:     true,
	},
}

// Allow reports whether the role may perform the action. It fails closed:
// unknown roles and unknown actions are denied.
func Allow(role domain.UserRole, action Action) bool {
	return allowed[role][action]
}
