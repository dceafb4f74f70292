package auth

import (
	"sync"

	"go.uber.org/zap"
)

// MaxLoginAttempts is the number of failed login attempts allowed before the
// caller locks the session out. The counter lives at the caller, not on the
// principal.
const MaxLoginAttempts = 3

// Manager is the identity and credential manager: it registers principals,
// authenticates credentials, and runs the password rotation protocol. It
// also owns the audit log, so every rotation and every action logged through
// LogAction lands in the same trail.
//
// Principals are held in an ordered slice; rotation replaces the principal
// in place at its index rather than append-and-remove, so listing order is
// stable.
type Manager struct {
	mu         sync.RWMutex
	principals []*Principal
	audit      *AuditLog
	log        *zap.Logger
}

// NewManager creates an identity manager with an empty principal registry
// and a fresh audit log.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{audit: NewAuditLog(), log: logger}
}

// Register adds a principal. It fails if the username is already taken.
func (m *Manager) Register(p *Principal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOfLocked(p.Username()) >= 0 {
		return ErrDuplicateUsername
	}
	m.principals = append(m.principals, p)
	m.log.Info("principal registered",
		zap.String("username", p.Username()),
		zap.String("role", string(p.Role())))
	return nil
}

// Authenticate looks up the principal by username and checks the password.
// A failed lookup and a failed password check are indistinguishable to the
// caller.
func (m *Manager) Authenticate(username, password string) (*Principal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOfLocked(username)
	if i < 0 || !m.principals[i].Authenticate(password) {
		return nil, false
	}
	return m.principals[i], true
}

// RotateCredential replaces a principal's credential by constructing a new
// principal of the same variant and swapping it in at the old one's position.
// The returned principal becomes the caller's session principal; the old
// object is stale and must not be reused.
//
// The gate order matters: identity is proven with the old password before
// the new password is even validated, and nothing is mutated until every
// check has passed.
func (m *Manager) RotateCredential(username, oldPassword, newPassword string) (*Principal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOfLocked(username)
	if i < 0 {
		return nil, ErrUnknownUser
	}
	current := m.principals[i]
	if !current.Authenticate(oldPassword) {
		return nil, ErrBadCredential
	}
	if newPassword == oldPassword {
		return nil, ErrSamePassword
	}
	if len(newPassword) < 4 {
		return nil, ErrWeakPassword
	}

	replacement := &Principal{
		username:         current.username,
		password:         newPassword,
		role:             current.role,
		linkedCustomerID: current.linkedCustomerID,
		// A successful rotation is the only transition that clears the
		// password-change-required flag.
		passwordChangeRequired: false,
	}
	m.principals[i] = replacement

	if _, err := m.audit.Append(username, replacement.role, "PASSWORD_CHANGED", "credential rotated"); err != nil {
		m.log.Warn("audit append failed", zap.Error(err))
	}
	m.log.Info("credential rotated", zap.String("username", username))
	return replacement, nil
}

// LogAction appends an action to the audit trail. Audit writes are
// fire-and-forget for callers; malformed records are dropped with a warning
// rather than failing the business operation.
func (m *Manager) LogAction(username string, role Role, action, details string) {
	if _, err := m.audit.Append(username, role, action, details); err != nil {
		m.log.Warn("audit append failed",
			zap.String("action", action),
			zap.Error(err))
	}
}

// AuditTrail returns the audit records in creation order.
func (m *Manager) AuditTrail() []AuditRecord {
	return m.audit.Trail()
}

// indexOfLocked returns the position of the principal with the given
// username, or -1. Callers hold m.mu.
func (m *Manager) indexOfLocked(username string) int {
	for i, p := range m.principals {
		if p.Username() == username {
			return i
		}
	}
	return -1
}
