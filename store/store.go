// Package store holds the in-memory registry of customers and accounts.
// Insertion order is preserved for listings; identity lookups go through map
// indexes keyed by the ID string.
package store

import (
	"errors"
	"sort"
	"sync"

	"go-bankledger/models"
)

var (
	// ErrAccountNotFound means no account with that number is registered.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCustomerNotFound means no customer with that ID is registered.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrDuplicateAccountNo means an account with that number already exists.
	ErrDuplicateAccountNo = errors.New("account number already in use")

	// ErrDuplicateCustomerID means a customer with that ID already exists.
	ErrDuplicateCustomerID = errors.New("customer ID already in use")

	// ErrUnknownAccountKind means CreateAccount was asked for a kind that
	// is neither savings nor checking.
	ErrUnknownAccountKind = errors.New("unknown account kind")
)

// Registry owns the collections of customers and accounts. All reads and
// writes are serialized behind a single RWMutex; returned entity pointers are
// shared, but their state only changes through the entities' own
// invariant-preserving methods.
type Registry struct {
	mu            sync.RWMutex
	customers     []*models.Customer
	customerIndex map[string]*models.Customer
	accounts      []*models.Account
	accountIndex  map[string]*models.Account
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		customerIndex: make(map[string]*models.Customer),
		accountIndex:  make(map[string]*models.Account),
	}
}

// CreateCustomer validates and registers a new customer.
func (r *Registry) CreateCustomer(customerID, name string) (*models.Customer, error) {
	c, err := models.NewCustomer(customerID, name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.customerIndex[customerID]; exists {
		return nil, ErrDuplicateCustomerID
	}
	r.customers = append(r.customers, c)
	r.customerIndex[customerID] = c
	return c, nil
}

// CreateAccount creates an account of the given kind bound to an existing
// customer. For savings accounts variantParam is the interest rate; for
// checking accounts it is the overdraft limit.
func (r *Registry) CreateAccount(customerID string, kind models.Kind, accountNo string, variantParam float64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.customerIndex[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	if _, exists := r.accountIndex[accountNo]; exists {
		return nil, ErrDuplicateAccountNo
	}

	var (
		a   *models.Account
		err error
	)
	switch kind {
	case models.Savings:
		a, err = models.NewSavingsAccount(accountNo, owner, variantParam)
	case models.Checking:
		a, err = models.NewCheckingAccount(accountNo, owner, variantParam)
	default:
		return nil, ErrUnknownAccountKind
	}
	if err != nil {
		return nil, err
	}
	if err := owner.AddAccount(a); err != nil {
		return nil, err
	}
	r.accounts = append(r.accounts, a)
	r.accountIndex[accountNo] = a
	return a, nil
}

// FindAccount retrieves an account by number.
func (r *Registry) FindAccount(accountNo string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accountIndex[accountNo]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// FindCustomer retrieves a customer by ID.
func (r *Registry) FindCustomer(customerID string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customerIndex[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return c, nil
}

// AccountsOwnedBy returns the customer's accounts in the order they were
// opened.
func (r *Registry) AccountsOwnedBy(customerID string) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customerIndex[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return c.Accounts(), nil
}

// DeleteAccount removes an account from the registry and unlinks it from its
// owner.
func (r *Registry) DeleteAccount(accountNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteAccountLocked(accountNo)
}

func (r *Registry) deleteAccountLocked(accountNo string) error {
	a, ok := r.accountIndex[accountNo]
	if !ok {
		return ErrAccountNotFound
	}
	a.Owner().RemoveAccount(accountNo)
	delete(r.accountIndex, accountNo)
	for i, acct := range r.accounts {
		if acct.AccountNo() == accountNo {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteCustomer removes a customer and cascades to every account they own.
func (r *Registry) DeleteCustomer(customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customerIndex[customerID]
	if !ok {
		return ErrCustomerNotFound
	}
	for _, a := range c.Accounts() {
		if err := r.deleteAccountLocked(a.AccountNo()); err != nil {
			return err
		}
	}
	delete(r.customerIndex, customerID)
	for i, cust := range r.customers {
		if cust.CustomerID() == customerID {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateOverdraftLimit changes the overdraft limit of a checking account.
func (r *Registry) UpdateOverdraftLimit(accountNo string, limit float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accountIndex[accountNo]
	if !ok {
		return ErrAccountNotFound
	}
	return a.SetOverdraftLimit(limit)
}

// ApplyInterestToSavings credits interest on every savings account and
// returns how many accounts were credited.
func (r *Registry) ApplyInterestToSavings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	credited := 0
	for _, a := range r.accounts {
		if a.Kind() != models.Savings {
			continue
		}
		if _, err := a.ApplyInterest(); err == nil {
			credited++
		}
	}
	return credited
}

// Customers returns all customers in registration order.
func (r *Registry) Customers() []*models.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Customer, len(r.customers))
	copy(out, r.customers)
	return out
}

// Accounts returns all accounts in creation order.
func (r *Registry) Accounts() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// AccountsSortedByOwner returns a snapshot of all accounts sorted by owner
// name. The registry's own ordering is untouched.
func (r *Registry) AccountsSortedByOwner() []*models.Account {
	out := r.Accounts()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Owner().Name() < out[j].Owner().Name()
	})
	return out
}

// AccountsSortedByBalance returns a snapshot of all accounts sorted by
// balance, highest first.
func (r *Registry) AccountsSortedByBalance() []*models.Account {
	out := r.Accounts()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance() > out[j].Balance()
	})
	return out
}
