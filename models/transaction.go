package models

import (
	"fmt"
	"time"
)

// TransactionType classifies a ledger movement.
type TransactionType string

const (
	TypeDeposit  TransactionType = "DEPOSIT"
	TypeWithdraw TransactionType = "WITHDRAW"
	TypeTransfer TransactionType = "TRANSFER"
)

// TransactionStatus is the lifecycle state of a transaction. A transaction is
// created PENDING and moves exactly once to COMPLETED or FAILED.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction is one ledger record. All fields except status are fixed at
// construction; once the status is terminal the record is immutable.
type Transaction struct {
	txID          string
	txType        TransactionType
	fromAccountNo string // empty for deposits
	toAccountNo   string // empty for withdrawals
	amount        float64
	createdAt     time.Time
	status        TransactionStatus
}

// NewTransaction creates a PENDING transaction. The amount must be positive;
// fromAccountNo and toAccountNo may each be empty depending on the type.
func NewTransaction(txID string, txType TransactionType, fromAccountNo, toAccountNo string, amount float64) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Transaction{
		txID:          txID,
		txType:        txType,
		fromAccountNo: fromAccountNo,
		toAccountNo:   toAccountNo,
		amount:        amount,
		createdAt:     time.Now(),
		status:        StatusPending,
	}, nil
}

func (t *Transaction) TxID() string              { return t.txID }
func (t *Transaction) Type() TransactionType     { return t.txType }
func (t *Transaction) FromAccountNo() string     { return t.fromAccountNo }
func (t *Transaction) ToAccountNo() string       { return t.toAccountNo }
func (t *Transaction) Amount() float64           { return t.amount }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }
func (t *Transaction) Status() TransactionStatus { return t.status }

// Complete marks the transaction COMPLETED. It fails if the transaction has
// already reached a terminal state.
func (t *Transaction) Complete() error {
	if t.status != StatusPending {
		return ErrTerminalTransaction
	}
	t.status = StatusCompleted
	return nil
}

// Fail marks the transaction FAILED. It fails if the transaction has already
// reached a terminal state.
func (t *Transaction) Fail() error {
	if t.status != StatusPending {
		return ErrTerminalTransaction
	}
	t.status = StatusFailed
	return nil
}

// String renders a one-line summary for history listings.
func (t *Transaction) String() string {
	route := ""
	switch {
	case t.fromAccountNo != "" && t.toAccountNo != "":
		route = t.fromAccountNo + " -> " + t.toAccountNo
	case t.fromAccountNo != "":
		route = "from " + t.fromAccountNo
	case t.toAccountNo != "":
		route = "to " + t.toAccountNo
	}
	return fmt.Sprintf("%s | %s | $%.2f | %s | %s | %s",
		t.txID, t.txType, t.amount, route, t.status, t.createdAt.Format("2006-01-02 15:04:05"))
}
