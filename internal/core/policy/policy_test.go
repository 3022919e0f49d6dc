package policy_test

import (
	"testing"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/core/policy"
	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	testCases := []struct {
		name    string
		role    domain.UserRole
		action  policy.Action
		allowed bool
	}{
		{"employee can create expenses", domain.RoleEmployee, policy.ActionCreateExpense, true},
		{"employee can list own expenses", domain.RoleEmployee, policy.ActionListOwnExpenses, true},
		{"employee cannot list all expenses", domain.RoleEmployee, policy.ActionListAllExpenses, false},
		{"employee cannot decide approvals", domain.RoleEmployee, policy.ActionDecideApproval, false},
		{"employee cannot manage users", domain.RoleEmployee, policy.ActionManageUsers, false},

		{"manager cannot create expenses", domain.RoleManager, policy.ActionCreateExpense, false},
		{"manager can list own expenses", domain.RoleManager, policy.ActionListOwnExpenses, true},
		{"manager can list all expenses", domain.RoleManager, policy.ActionListAllExpenses, true},
		{"manager can decide approvals", domain.RoleManager, policy.ActionDecideApproval, true},
		{"manager cannot manage users", domain.RoleManager, policy.ActionManageUsers, false},

		{"admin cannot create expenses", domain.RoleAdmin, policy.ActionCreateExpense, false},
		{"admin can list all expenses", domain.RoleAdmin, policy.ActionListAllExpenses, true},
		{"admin can decide approvals", domain.RoleAdmin, policy.ActionDecideApproval, true},
		{"admin can manage users", domain.RoleAdmin, policy.ActionManageUsers, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, policy.Allow(tc.role, tc.action))
		})
	}
}

func TestAllowFailsClosed(t *testing.T) {
	assert.False(t, policy.Allow(domain.UserRole("SUPERUSER"), policy.ActionManageUsers))
	assert.False(t, policy.Allow(domain.UserRole(""), policy.ActionListOwnExpenses))
	assert.False(t, policy.Allow(domain.RoleAdmin, policy.Action("unknown:action")))
}
