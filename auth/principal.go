// Package auth provides principals, role-based permissions, the
// authorization engine, the audit log, and the identity manager with its
// immutable credential rotation protocol.
package auth

import (
	"errors"
	"strings"

	"go-bankledger/models"
)

var (
	// ErrEmptyUsername means a principal was constructed without a username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyPassword means a principal was constructed without a password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrDuplicateUsername means the username is already registered.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrUnknownUser means no principal with that username exists.
	ErrUnknownUser = errors.New("unknown user")

	// ErrBadCredential means the supplied current password did not match.
	ErrBadCredential = errors.New("current password does not match")

	// ErrWeakPassword means the new password is empty or shorter than 4 characters.
	ErrWeakPassword = errors.New("new password must be at least 4 characters")

	// ErrSamePassword means the new password equals the old one.
	ErrSamePassword = errors.New("new password must differ from the old one")
)

// Role is a principal's role tag.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Permission names a class of action a role may perform.
type Permission string

const (
	// Customer operations.
	PermCreateCustomer   Permission = "CREATE_CUSTOMER"
	PermViewCustomer     Permission = "VIEW_CUSTOMER"
	PermViewAllCustomers Permission = "VIEW_ALL_CUSTOMERS"
	PermDeleteCustomer   Permission = "DELETE_CUSTOMER"

	// Account operations.
	PermCreateAccount      Permission = "CREATE_ACCOUNT"
	PermViewAccountDetails Permission = "VIEW_ACCOUNT_DETAILS"
	PermViewAllAccounts    Permission = "VIEW_ALL_ACCOUNTS"
	PermDeleteAccount      Permission = "DELETE_ACCOUNT"
	PermUpdateOverdraft    Permission = "UPDATE_OVERDRAFT"

	// Transaction operations.
	PermDeposit       Permission = "DEPOSIT"
	PermWithdraw      Permission = "WITHDRAW"
	PermTransfer      Permission = "TRANSFER"
	PermViewTxHistory Permission = "VIEW_TRANSACTION_HISTORY"

	// Profile operations.
	PermCreateProfile Permission = "CREATE_PROFILE"
	PermUpdateProfile Permission = "UPDATE_PROFILE"

	// Reporting and utilities.
	PermApplyInterest  Permission = "APPLY_INTEREST"
	PermSortByName     Permission = "SORT_BY_NAME"
	PermSortByBalance  Permission = "SORT_BY_BALANCE"
	PermViewAuditTrail Permission = "VIEW_AUDIT_TRAIL"

	// Security operations.
	PermChangePassword Permission = "CHANGE_PASSWORD"
)

// rolePermissions is the static permission table, indexed by role tag.
// Admins administer the system but do not move money; customers move money
// on their own accounts only.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermCreateCustomer, PermViewCustomer, PermViewAllCustomers, PermDeleteCustomer,
		PermCreateAccount, PermViewAccountDetails, PermViewAllAccounts, PermDeleteAccount, PermUpdateOverdraft,
		PermCreateProfile, PermUpdateProfile,
		PermViewTxHistory,
		PermApplyInterest, PermSortByName, PermSortByBalance, PermViewAuditTrail,
	},
	RoleCustomer: {
		PermViewAccountDetails,
		PermDeposit, PermWithdraw, PermTransfer, PermViewTxHistory,
		PermChangePassword,
	},
}

// Permissions returns the permission set for a role.
func Permissions(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// Principal is an authenticated identity. The credential is immutable on the
// object; rotation replaces the whole principal through
// Manager.RotateCredential, so no other code path can change a live
// credential. Customer principals carry the customer ID they are linked to.
type Principal struct {
	username               string
	password               string
	role                   Role
	linkedCustomerID       string // customer principals only
	passwordChangeRequired bool
}

// NewAdmin creates an admin principal. Admins are not required to change
// their password on first login.
func NewAdmin(username, password string) (*Principal, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	return &Principal{username: username, password: password, role: RoleAdmin}, nil
}

// NewCustomerUser creates a customer principal linked to an existing
// customer ID. Customers must change their issued password on first login.
func NewCustomerUser(username, password, linkedCustomerID string) (*Principal, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if !models.ValidCustomerID(linkedCustomerID) {
		return nil, models.ErrInvalidCustomerID
	}
	return &Principal{
		username:               username,
		password:               password,
		role:                   RoleCustomer,
		linkedCustomerID:       linkedCustomerID,
		passwordChangeRequired: true,
	}, nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (p *Principal) Username() string         { return p.username }
func (p *Principal) Role() Role               { return p.role }
func (p *Principal) LinkedCustomerID() string { return p.linkedCustomerID }

// PasswordChangeRequired reports whether the principal must rotate their
// password before doing anything else.
func (p *Principal) PasswordChangeRequired() bool { return p.passwordChangeRequired }

// Authenticate checks the provided password against the stored credential.
// Comparison is plain equality; the source system stores no hash and this
// reimplementation deliberately does not invent one (see DESIGN.md).
func (p *Principal) Authenticate(password string) bool {
	return p.password == password
}

// HasPermission reports whether the principal's role grants the permission.
func (p *Principal) HasPermission(perm Permission) bool {
	for _, granted := range rolePermissions[p.role] {
		if granted == perm {
			return true
		}
	}
	return false
}
