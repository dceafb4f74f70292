package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyAction means an audit record was submitted without an action.
	ErrEmptyAction = errors.New("audit action cannot be empty")
)

// AuditRecord is one immutable entry in the audit trail.
type AuditRecord struct {
	ID        string
	Timestamp time.Time
	Username  string
	Role      Role
	Action    string
	Details   string
}

// String renders the record in trail format:
// "2025-01-15 14:30:45 | alice (ADMIN) | CREATE_CUSTOMER | Customer ID: C001".
func (r AuditRecord) String() string {
	return fmt.Sprintf("%s | %s (%s) | %s | %s",
		r.Timestamp.Format("2006-01-02 15:04:05"), r.Username, r.Role, r.Action, r.Details)
}

// AuditLog is the append-only trail of every authorized and denied action.
// Records are stored and returned by value, so nothing outside the log can
// change an existing entry, and nothing is ever removed.
type AuditLog struct {
	mu      sync.RWMutex
	records []AuditRecord
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Append validates and appends a record, returning the stored copy.
func (l *AuditLog) Append(username string, role Role, action, details string) (AuditRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return AuditRecord{}, ErrEmptyUsername
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return AuditRecord{}, ErrEmptyAction
	}
	rec := AuditRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Username:  username,
		Role:      role,
		Action:    action,
		Details:   strings.TrimSpace(details),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return rec, nil
}

// Trail returns all records in creation order.
func (l *AuditLog) Trail() []AuditRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]AuditRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
