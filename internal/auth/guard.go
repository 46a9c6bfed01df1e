package auth

import (
	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
)

// Operation identifies a guarded back-office operation. Handlers never check
// roles themselves; they declare an Operation and the guard decides.
type Operation string

const (
	OpManageUsers        Operation = "users:manage"
	OpListEvents         Operation = "events:list"
	OpViewEventDetail    Operation = "events:detail"
	OpManageEvents       Operation = "events:manage"
	OpCreateTransaction  Operation = "transactions:create"
	OpListTransactions   Operation = "transactions:list"
	OpDeleteTransaction  Operation = "transactions:delete"
	OpViewReports        Operation = "reports:view"
	OpMarkCommissionPaid Operation = "commissions:mark-paid"
	OpViewEarnings       Operation = "earnings:view"
	OpManageExpenses     Operation = "expenses:manage"
)

// permissions is the single source of truth for role access.
var permissions = map[Operation]map[model.Role]bool{
	OpManageUsers:        {model.RoleAdmin: true},
	OpListEvents:         {model.RoleAdmin: true, model.RoleBooker: true},
	OpViewEventDetail:    {model.RoleAdmin: true},
	OpManageEvents:       {model.RoleAdmin: true},
	OpCreateTransaction:  {model.RoleAdmin: true, model.RoleBooker: true},
	OpListTransactions:   {model.RoleAdmin: true},
	OpDeleteTransaction:  {model.RoleAdmin: true},
	OpViewReports:        {model.RoleAdmin: true},
	OpMarkCommissionPaid: {model.RoleAdmin: true},
	OpViewEarnings:       {model.RoleBooker: true},
	OpManageExpenses:     {model.RoleAdmin: true},
}

// Decision is the guard's typed allow/deny result. Err carries the
// authorization failure to surface when Allowed is false.
type Decision struct {
	Allowed bool
	Err     error
}

// Guard decides whether a role may perform an operation.
type Guard struct{}

// NewGuard creates an authorization guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Allowed reports whether the role may perform the operation.
func (g *Guard) Allowed(role model.Role, op Operation) bool {
	return permissions[op][role]
}

// Decide returns a typed decision for the role and operation. Denials for
// booker-only operations surface as a booker-access error rather than the
// usual admin-required one.
func (g *Guard) Decide(role model.Role, op Operation) Decision {
	if g.Allowed(role, op) {
		return Decision{Allowed: true}
	}
	if op == OpViewEarnings {
		return Decision{Allowed: false, Err: apperrors.ErrBookerRequired}
	}
	return Decision{Allowed: false, Err: apperrors.ErrAdminRequired}
}
