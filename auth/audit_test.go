package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogAppendValidation(t *testing.T) {
	l := NewAuditLog()

	_, err := l.Append("", RoleAdmin, "DEPOSIT", "details")
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = l.Append("alice", RoleCustomer, "  ", "details")
	assert.ErrorIs(t, err, ErrEmptyAction)

	rec, err := l.Append("  alice  ", RoleCustomer, " DEPOSIT ", " tx TX001 ")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, "DEPOSIT", rec.Action)
	assert.Equal(t, "tx TX001", rec.Details)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestAuditLogAppendOnly(t *testing.T) {
	l := NewAuditLog()

	lengths := []int{l.Len()}
	_, err := l.Append("alice", RoleCustomer, "DEPOSIT", "tx TX001")
	require.NoError(t, err)
	lengths = append(lengths, l.Len())
	_, err = l.Append("admin", RoleAdmin, "CREATE_CUSTOMER", "customer C003")
	require.NoError(t, err)
	lengths = append(lengths, l.Len())

	for i := 1; i < len(lengths); i++ {
		assert.GreaterOrEqual(t, lengths[i], lengths[i-1], "length is monotonically non-decreasing")
	}

	trail := l.Trail()
	require.Len(t, trail, 2)
	assert.Equal(t, "DEPOSIT", trail[0].Action)
	assert.Equal(t, "CREATE_CUSTOMER", trail[1].Action)

	// Mutating the returned slice does not touch stored records.
	trail[0].Action = "TAMPERED"
	assert.Equal(t, "DEPOSIT", l.Trail()[0].Action)
}

func TestAuditRecordString(t *testing.T) {
	l := NewAuditLog()
	rec, err := l.Append("alice", RoleAdmin, "CREATE_CUSTOMER", "Customer ID: C001")
	require.NoError(t, err)

	s := rec.String()
	assert.Contains(t, s, "alice (ADMIN)")
	assert.Contains(t, s, "CREATE_CUSTOMER")
	assert.Contains(t, s, "Customer ID: C001")
}
