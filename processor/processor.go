// Package processor orchestrates deposit, withdraw and transfer: it checks
// access, delegates the balance change to the account's policy, creates the
// transaction record, and writes the audit trail regardless of outcome.
package processor

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"go-bankledger/auth"
	"go-bankledger/models"
	"go-bankledger/store"
)

var (
	// ErrAccessDenied means the principal may not operate on the account.
	ErrAccessDenied = errors.New("access denied")

	// ErrSameAccount means a transfer named the same account on both legs.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// Auditor receives one record per processed or denied operation.
// *auth.Manager satisfies it.
type Auditor interface {
	LogAction(username string, role auth.Role, action, details string)
}

// Processor executes attributed ledger operations. The mutex serializes all
// balance mutations, so the two legs of a transfer commit atomically and
// concurrent withdrawals cannot lose updates.
type Processor struct {
	mu        sync.Mutex
	registry  *store.Registry
	authz     *auth.Engine
	audit     Auditor
	log       *zap.Logger
	txCounter int
}

// NewProcessor creates a processor over the given registry. A nil logger is
// replaced with a no-op logger.
func NewProcessor(registry *store.Registry, authz *auth.Engine, audit Auditor, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{registry: registry, authz: authz, audit: audit, log: logger}
}

// Deposit credits amount to the account on behalf of the principal. The
// amount is validated before any transaction record exists, so invalid
// amounts leave no trace in the ledger; the only other failure is an unknown
// account.
func (p *Processor) Deposit(principal *auth.Principal, accountNo string, amount float64) (*models.Transaction, error) {
	if err := p.checkAccess(principal, accountNo, "DEPOSIT"); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	account, err := p.registry.FindAccount(accountNo)
	if err != nil {
		return nil, err
	}
	tx, err := models.NewTransaction(p.nextTxIDLocked(), models.TypeDeposit, "", accountNo, amount)
	if err != nil {
		return nil, err
	}
	if err := account.Deposit(amount); err != nil {
		return nil, err
	}
	_ = tx.Complete()
	account.AddTransaction(tx)

	p.recordOutcome(principal, "DEPOSIT", tx)
	return tx, nil
}

// Withdraw debits amount from the account on behalf of the principal. A
// withdrawal the account policy rejects still produces a FAILED transaction
// on the ledger; the failed record is returned together with the policy
// error.
func (p *Processor) Withdraw(principal *auth.Principal, accountNo string, amount float64) (*models.Transaction, error) {
	if err := p.checkAccess(principal, accountNo, "WITHDRAW"); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	account, err := p.registry.FindAccount(accountNo)
	if err != nil {
		return nil, err
	}
	tx, err := models.NewTransaction(p.nextTxIDLocked(), models.TypeWithdraw, accountNo, "", amount)
	if err != nil {
		return nil, err
	}
	if werr := account.Withdraw(amount); werr != nil {
		_ = tx.Fail()
		account.AddTransaction(tx)
		p.recordOutcome(principal, "WITHDRAW_FAILED", tx)
		return tx, fmt.Errorf("withdraw %s: %w", accountNo, werr)
	}
	_ = tx.Complete()
	account.AddTransaction(tx)

	p.recordOutcome(principal, "WITHDRAW", tx)
	return tx, nil
}

// Transfer moves amount between two accounts. Access is checked on the
// source only — the destination may belong to anyone. If the source leg
// fails the FAILED record is appended to the source history alone; on
// success the same record lands in both histories.
func (p *Processor) Transfer(principal *auth.Principal, fromAccountNo, toAccountNo string, amount float64) (*models.Transaction, error) {
	if err := p.checkAccess(principal, fromAccountNo, "TRANSFER"); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if fromAccountNo == toAccountNo {
		return nil, ErrSameAccount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fromAccount, err := p.registry.FindAccount(fromAccountNo)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", fromAccountNo, err)
	}
	toAccount, err := p.registry.FindAccount(toAccountNo)
	if err != nil {
		return nil, fmt.Errorf("destination %s: %w", toAccountNo, err)
	}
	tx, err := models.NewTransaction(p.nextTxIDLocked(), models.TypeTransfer, fromAccountNo, toAccountNo, amount)
	if err != nil {
		return nil, err
	}
	if werr := fromAccount.Withdraw(amount); werr != nil {
		_ = tx.Fail()
		fromAccount.AddTransaction(tx)
		p.recordOutcome(principal, "TRANSFER_FAILED", tx)
		return tx, fmt.Errorf("transfer from %s: %w", fromAccountNo, werr)
	}
	// Cannot fail: the amount was validated positive above.
	_ = toAccount.Deposit(amount)
	_ = tx.Complete()
	fromAccount.AddTransaction(tx)
	toAccount.AddTransaction(tx)

	p.recordOutcome(principal, "TRANSFER", tx)
	return tx, nil
}

// HistoryLIFO returns the account's transactions most-recent-first as a
// materialized slice.
func (p *Processor) HistoryLIFO(accountNo string) ([]*models.Transaction, error) {
	account, err := p.registry.FindAccount(accountNo)
	if err != nil {
		return nil, err
	}
	history := account.History()
	out := make([]*models.Transaction, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

// checkAccess runs the authorization chokepoint before any state is touched.
// A denial creates no transaction; if the principal is known, the denied
// attempt is audited.
func (p *Processor) checkAccess(principal *auth.Principal, accountNo, action string) error {
	if p.authz.CanAccess(principal, accountNo) {
		return nil
	}
	if principal != nil {
		p.audit.LogAction(principal.Username(), principal.Role(), action+"_DENIED",
			"access denied for account "+accountNo)
		p.log.Warn("access denied",
			zap.String("username", principal.Username()),
			zap.String("account", accountNo),
			zap.String("action", action))
	}
	return ErrAccessDenied
}

func (p *Processor) recordOutcome(principal *auth.Principal, action string, tx *models.Transaction) {
	p.audit.LogAction(principal.Username(), principal.Role(), action,
		fmt.Sprintf("tx %s amount $%.2f", tx.TxID(), tx.Amount()))
	p.log.Info("transaction processed",
		zap.String("tx_id", tx.TxID()),
		zap.String("type", string(tx.Type())),
		zap.String("status", string(tx.Status())),
		zap.Float64("amount", tx.Amount()))
}

// nextTxIDLocked assigns the next monotonic TX### identifier. Callers hold
// p.mu.
func (p *Processor) nextTxIDLocked() string {
	p.txCounter++
	return fmt.Sprintf("TX%03d", p.txCounter)
}
