package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomerValidation(t *testing.T) {
	tests := []struct {
		name       string
		customerID string
		custName   string
		wantErr    error
	}{
		{name: "valid", customerID: "C001", custName: "Alice"},
		{name: "bad id prefix", customerID: "X001", custName: "Alice", wantErr: ErrInvalidCustomerID},
		{name: "too few digits", customerID: "C01", custName: "Alice", wantErr: ErrInvalidCustomerID},
		{name: "too many digits", customerID: "C0001", custName: "Alice", wantErr: ErrInvalidCustomerID},
		{name: "empty name", customerID: "C001", custName: "  ", wantErr: ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.customerID, tt.custName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.customerID, c.CustomerID())
		})
	}
}

func TestCustomerAccountSetOrderedAndUnique(t *testing.T) {
	c, err := NewCustomer("C001", "Alice")
	require.NoError(t, err)

	a1, err := NewSavingsAccount("ACC001", c, 0.03)
	require.NoError(t, err)
	a2, err := NewCheckingAccount("ACC002", c, 100)
	require.NoError(t, err)

	require.NoError(t, c.AddAccount(a1))
	require.NoError(t, c.AddAccount(a2))
	assert.ErrorIs(t, c.AddAccount(a1), ErrDuplicateAccount)

	accounts := c.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, "ACC001", accounts[0].AccountNo())
	assert.Equal(t, "ACC002", accounts[1].AccountNo())

	assert.True(t, c.RemoveAccount("ACC001"))
	assert.False(t, c.RemoveAccount("ACC001"))
	assert.Len(t, c.Accounts(), 1)
}

func TestCustomerProfile(t *testing.T) {
	c, err := NewCustomer("C001", "Alice")
	require.NoError(t, err)
	assert.Nil(t, c.Profile())

	assert.ErrorIs(t, c.SetProfile("1 Main St", "555-0100", "not-an-email"), ErrInvalidEmail)
	assert.Nil(t, c.Profile(), "failed profile update must not partially apply")

	require.NoError(t, c.SetProfile("1 Main St", "555-0100", "alice@example.com"))
	p := c.Profile()
	require.NotNil(t, p)
	assert.Equal(t, "alice@example.com", p.Email)

	// The returned profile is a copy.
	p.Email = "evil@example.com"
	assert.Equal(t, "alice@example.com", c.Profile().Email)
}
