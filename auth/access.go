package auth

import "go-bankledger/models"

// AccountFinder is the slice of the registry the engine needs.
type AccountFinder interface {
	FindAccount(accountNo string) (*models.Account, error)
}

// Engine decides whether a principal may act on a specific account. It is
// the single authorization chokepoint: every mutating ledger operation calls
// CanAccess before touching account state, and callers additionally gate on
// HasPermission. The two checks are independent — permission answers "may
// this role ever do X", access answers "may this principal do X to this
// account".
type Engine struct {
	accounts AccountFinder
}

// NewEngine creates an authorization engine backed by the given account
// lookup.
func NewEngine(accounts AccountFinder) *Engine {
	return &Engine{accounts: accounts}
}

// CanAccess reports whether the principal may operate on the account:
// admins may touch any account, customer principals only accounts owned by
// their linked customer. A nil principal or a missing account is always
// denied.
func (e *Engine) CanAccess(p *Principal, accountNo string) bool {
	if p == nil {
		return false
	}
	switch p.Role() {
	case RoleAdmin:
		return true
	case RoleCustomer:
		a, err := e.accounts.FindAccount(accountNo)
		if err != nil {
			return false
		}
		return a.Owner().CustomerID() == p.LinkedCustomerID()
	}
	return false
}

// HasPermission is the nil-safe role permission check.
func (e *Engine) HasPermission(p *Principal, perm Permission) bool {
	if p == nil {
		return false
	}
	return p.HasPermission(perm)
}
