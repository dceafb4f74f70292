package models

import "strings"

// Profile holds optional contact details for a customer. At most one profile
// exists per customer.
type Profile struct {
	Address string
	Phone   string
	Email   string
}

// Customer is a bank customer. The ID is immutable after creation; the
// account set is ordered and unique by account number.
type Customer struct {
	customerID string
	name       string
	profile    *Profile
	accounts   []*Account
}

// NewCustomer creates a customer with a C### ID and a non-empty name.
func NewCustomer(customerID, name string) (*Customer, error) {
	if !ValidCustomerID(customerID) {
		return nil, ErrInvalidCustomerID
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Customer{customerID: customerID, name: strings.TrimSpace(name)}, nil
}

func (c *Customer) CustomerID() string { return c.customerID }
func (c *Customer) Name() string       { return c.name }

// Profile returns a copy of the customer's profile, or nil if none is set.
func (c *Customer) Profile() *Profile {
	if c.profile == nil {
		return nil
	}
	cp := *c.profile
	return &cp
}

// SetProfile creates or replaces the customer's profile. An empty email is
// allowed; a non-empty one must be well formed.
func (c *Customer) SetProfile(address, phone, email string) error {
	if email != "" && !ValidEmail(email) {
		return ErrInvalidEmail
	}
	c.profile = &Profile{Address: address, Phone: phone, Email: email}
	return nil
}

// Accounts returns the customer's accounts in the order they were added.
func (c *Customer) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// AddAccount appends an account to the customer's ordered account set,
// rejecting duplicates by account number.
func (c *Customer) AddAccount(a *Account) error {
	for _, existing := range c.accounts {
		if existing.AccountNo() == a.AccountNo() {
			return ErrDuplicateAccount
		}
	}
	c.accounts = append(c.accounts, a)
	return nil
}

// RemoveAccount unlinks the account with the given number, reporting whether
// anything was removed.
func (c *Customer) RemoveAccount(accountNo string) bool {
	for i, a := range c.accounts {
		if a.AccountNo() == accountNo {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return true
		}
	}
	return false
}
