package models

import "fmt"

// Kind discriminates the two account variants. The variant decides the
// withdrawal policy and which extra field (interest rate or overdraft limit)
// is meaningful.
type Kind string

const (
	Savings  Kind = "SAVINGS"
	Checking Kind = "CHECKING"
)

// Account is a bank account. The balance is only ever mutated through
// Deposit, Withdraw and ApplyInterest, which enforce the variant policy
// before touching it:
//
//   - Savings: balance never goes negative; carries an interest rate in [0, 1].
//   - Checking: balance may go down to -overdraftLimit.
//
// The account number and owner are immutable after construction.
type Account struct {
	accountNo      string
	kind           Kind
	owner          *Customer
	balance        float64
	interestRate   float64 // savings only
	overdraftLimit float64 // checking only, mutable via SetOverdraftLimit
	history        []*Transaction
}

// NewSavingsAccount creates a savings account with zero balance. The rate
// must lie in [0, 1].
func NewSavingsAccount(accountNo string, owner *Customer, interestRate float64) (*Account, error) {
	if err := validateAccountBasics(accountNo, owner); err != nil {
		return nil, err
	}
	if interestRate < 0 || interestRate > 1 {
		return nil, ErrInvalidInterestRate
	}
	return &Account{accountNo: accountNo, kind: Savings, owner: owner, interestRate: interestRate}, nil
}

// NewCheckingAccount creates a checking account with zero balance. The
// overdraft limit must be non-negative.
func NewCheckingAccount(accountNo string, owner *Customer, overdraftLimit float64) (*Account, error) {
	if err := validateAccountBasics(accountNo, owner); err != nil {
		return nil, err
	}
	if overdraftLimit < 0 {
		return nil, ErrInvalidOverdraftLimit
	}
	return &Account{accountNo: accountNo, kind: Checking, owner: owner, overdraftLimit: overdraftLimit}, nil
}

func validateAccountBasics(accountNo string, owner *Customer) error {
	if !ValidAccountNo(accountNo) {
		return ErrInvalidAccountNo
	}
	if owner == nil {
		return ErrNoOwner
	}
	return nil
}

func (a *Account) AccountNo() string       { return a.accountNo }
func (a *Account) Kind() Kind              { return a.kind }
func (a *Account) Owner() *Customer        { return a.owner }
func (a *Account) Balance() float64        { return a.balance }
func (a *Account) InterestRate() float64   { return a.interestRate }
func (a *Account) OverdraftLimit() float64 { return a.overdraftLimit }

// Deposit adds a positive amount to the balance. It cannot fail for any
// positive amount on either variant.
func (a *Account) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.balance += amount
	return nil
}

// Withdraw subtracts amount from the balance if the variant policy allows it.
// On error the balance is unchanged.
func (a *Account) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	switch a.kind {
	case Savings:
		if amount > a.balance {
			return ErrInsufficientFunds
		}
	case Checking:
		if amount > a.balance+a.overdraftLimit {
			return ErrOverdraftExceeded
		}
	}
	a.balance -= amount
	return nil
}

// ApplyInterest credits balance * interestRate to a savings account and
// returns the accrued amount. The rate was validated at construction, so the
// only failure is calling this on a non-savings account.
func (a *Account) ApplyInterest() (float64, error) {
	if a.kind != Savings {
		return 0, ErrNotSavings
	}
	interest := a.balance * a.interestRate
	a.balance += interest
	return interest, nil
}

// SetOverdraftLimit updates the overdraft limit of a checking account.
func (a *Account) SetOverdraftLimit(limit float64) error {
	if a.kind != Checking {
		return ErrNotChecking
	}
	if limit < 0 {
		return ErrInvalidOverdraftLimit
	}
	a.overdraftLimit = limit
	return nil
}

// AddTransaction appends a transaction to the account's ordered history.
func (a *Account) AddTransaction(tx *Transaction) {
	a.history = append(a.history, tx)
}

// History returns the account's transaction history, oldest first.
func (a *Account) History() []*Transaction {
	out := make([]*Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// Details renders a variant-tagged summary line of the account.
func (a *Account) Details() string {
	base := fmt.Sprintf("%s | Owner: %s | Balance: $%.2f", a.accountNo, a.owner.Name(), a.balance)
	switch a.kind {
	case Savings:
		return fmt.Sprintf("[SAVINGS] %s | Interest: %.1f%%", base, a.interestRate*100)
	case Checking:
		return fmt.Sprintf("[CHECKING] %s | Overdraft Limit: $%.2f", base, a.overdraftLimit)
	}
	return base
}
