package models

import "errors"

// Domain errors raised by entity constructors and mutators. The store and
// processor layers wrap these; the console layer renders them.
var (
	// ErrInvalidAmount means a deposit or withdrawal amount was not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds means a savings withdrawal exceeded the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverdraftExceeded means a checking withdrawal exceeded balance plus overdraft limit.
	ErrOverdraftExceeded = errors.New("overdraft limit exceeded")

	// ErrInvalidCustomerID means the customer ID does not match the C### format.
	ErrInvalidCustomerID = errors.New("customer ID must match C### (e.g. C001)")

	// ErrInvalidAccountNo means the account number does not match the ACC### format.
	ErrInvalidAccountNo = errors.New("account number must match ACC### (e.g. ACC001)")

	// ErrEmptyName means a customer name was empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNoOwner means an account was constructed without an owning customer.
	ErrNoOwner = errors.New("account requires an owner")

	// ErrInvalidInterestRate means a savings rate was outside [0, 1].
	ErrInvalidInterestRate = errors.New("interest rate must be between 0 and 1")

	// ErrInvalidOverdraftLimit means a checking overdraft limit was negative.
	ErrInvalidOverdraftLimit = errors.New("overdraft limit cannot be negative")

	// ErrNotSavings means a savings-only operation was called on another variant.
	ErrNotSavings = errors.New("not a savings account")

	// ErrNotChecking means a checking-only operation was called on another variant.
	ErrNotChecking = errors.New("not a checking account")

	// ErrDuplicateAccount means the customer already owns an account with that number.
	ErrDuplicateAccount = errors.New("customer already owns this account")

	// ErrTerminalTransaction means a completed or failed transaction was mutated again.
	ErrTerminalTransaction = errors.New("transaction already in a terminal state")

	// ErrInvalidEmail means a profile email did not look like an email address.
	ErrInvalidEmail = errors.New("invalid email format")
)
