package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bankledger/models"
)

func seedRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	_, err := r.CreateCustomer("C001", "Alice Johnson")
	require.NoError(t, err)
	_, err = r.CreateCustomer("C002", "Bob Smith")
	require.NoError(t, err)
	_, err = r.CreateAccount("C001", models.Savings, "ACC001", 0.03)
	require.NoError(t, err)
	_, err = r.CreateAccount("C001", models.Checking, "ACC002", 500)
	require.NoError(t, err)
	_, err = r.CreateAccount("C002", models.Savings, "ACC003", 0.02)
	require.NoError(t, err)
	return r
}

func TestCreateCustomerDuplicate(t *testing.T) {
	r := seedRegistry(t)
	_, err := r.CreateCustomer("C001", "Other Alice")
	assert.ErrorIs(t, err, ErrDuplicateCustomerID)
}

func TestCreateAccountErrors(t *testing.T) {
	r := seedRegistry(t)

	_, err := r.CreateAccount("C999", models.Savings, "ACC010", 0.03)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = r.CreateAccount("C001", models.Savings, "ACC001", 0.03)
	assert.ErrorIs(t, err, ErrDuplicateAccountNo)

	_, err = r.CreateAccount("C001", models.Kind("MONEY_MARKET"), "ACC010", 0)
	assert.ErrorIs(t, err, ErrUnknownAccountKind)

	_, err = r.CreateAccount("C001", models.Savings, "ACC010", 2.0)
	assert.ErrorIs(t, err, models.ErrInvalidInterestRate)
}

func TestLookups(t *testing.T) {
	r := seedRegistry(t)

	a, err := r.FindAccount("ACC002")
	require.NoError(t, err)
	assert.Equal(t, models.Checking, a.Kind())

	_, err = r.FindAccount("ACC999")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	c, err := r.FindCustomer("C002")
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", c.Name())

	_, err = r.FindCustomer("C999")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestAccountsOwnedByPreservesOpeningOrder(t *testing.T) {
	r := seedRegistry(t)

	owned, err := r.AccountsOwnedBy("C001")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "ACC001", owned[0].AccountNo())
	assert.Equal(t, "ACC002", owned[1].AccountNo())

	_, err = r.AccountsOwnedBy("C999")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestDeleteAccountUnlinksOwner(t *testing.T) {
	r := seedRegistry(t)

	require.NoError(t, r.DeleteAccount("ACC001"))
	_, err := r.FindAccount("ACC001")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	owned, err := r.AccountsOwnedBy("C001")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "ACC002", owned[0].AccountNo())

	assert.ErrorIs(t, r.DeleteAccount("ACC001"), ErrAccountNotFound)
}

func TestDeleteCustomerCascades(t *testing.T) {
	r := seedRegistry(t)

	require.NoError(t, r.DeleteCustomer("C001"))

	_, err := r.FindCustomer("C001")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
	_, err = r.FindAccount("ACC001")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = r.FindAccount("ACC002")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// The other customer is untouched.
	a, err := r.FindAccount("ACC003")
	require.NoError(t, err)
	assert.Equal(t, "C002", a.Owner().CustomerID())
}

func TestUpdateOverdraftLimit(t *testing.T) {
	r := seedRegistry(t)

	require.NoError(t, r.UpdateOverdraftLimit("ACC002", 750))
	a, err := r.FindAccount("ACC002")
	require.NoError(t, err)
	assert.Equal(t, 750.0, a.OverdraftLimit())

	assert.ErrorIs(t, r.UpdateOverdraftLimit("ACC001", 100), models.ErrNotChecking)
	assert.ErrorIs(t, r.UpdateOverdraftLimit("ACC999", 100), ErrAccountNotFound)
}

func TestApplyInterestToSavings(t *testing.T) {
	r := seedRegistry(t)

	a1, err := r.FindAccount("ACC001")
	require.NoError(t, err)
	require.NoError(t, a1.Deposit(1000))
	a3, err := r.FindAccount("ACC003")
	require.NoError(t, err)
	require.NoError(t, a3.Deposit(500))

	credited := r.ApplyInterestToSavings()
	assert.Equal(t, 2, credited)
	assert.InDelta(t, 1030.0, a1.Balance(), 1e-9)
	assert.InDelta(t, 510.0, a3.Balance(), 1e-9)

	// Checking account is untouched by the sweep.
	a2, err := r.FindAccount("ACC002")
	require.NoError(t, err)
	assert.Zero(t, a2.Balance())
}

func TestSortedSnapshotsLeaveRegistryOrderIntact(t *testing.T) {
	r := seedRegistry(t)

	a2, err := r.FindAccount("ACC002")
	require.NoError(t, err)
	require.NoError(t, a2.Deposit(900))
	a3, err := r.FindAccount("ACC003")
	require.NoError(t, err)
	require.NoError(t, a3.Deposit(100))

	byOwner := r.AccountsSortedByOwner()
	require.Len(t, byOwner, 3)
	assert.Equal(t, "Alice Johnson", byOwner[0].Owner().Name())
	assert.Equal(t, "Bob Smith", byOwner[2].Owner().Name())

	byBalance := r.AccountsSortedByBalance()
	assert.Equal(t, "ACC002", byBalance[0].AccountNo())
	assert.Equal(t, "ACC003", byBalance[1].AccountNo())

	// Creation order is the registry's own ordering.
	all := r.Accounts()
	assert.Equal(t, "ACC001", all[0].AccountNo())
	assert.Equal(t, "ACC002", all[1].AccountNo())
	assert.Equal(t, "ACC003", all[2].AccountNo())
}
