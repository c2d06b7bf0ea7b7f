package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with zero dues", func(t *testing.T) {
		client, err := NewClient(uuid.New(), "Acme Ltd")
		require.NoError(t, err)

		assert.Equal(t, "Acme Ltd", client.Name)
		assert.True(t, client.TotalDues.IsZero())
		assert.False(t, client.HasOutstandingDues())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient(uuid.New(), "")
		assert.Error(t, err)
	})

	t.Run("rejects empty tenant", func(t *testing.T) {
		_, err := NewClient(uuid.Nil, "Acme Ltd")
		assert.Error(t, err)
	})
}

func TestClient_UpdateDetails(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme Ltd")
	require.NoError(t, err)

	err = client.UpdateDetails("Acme Trading", "123456", "acme@example.com", "1 Main St")
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading", client.Name)
	assert.Equal(t, "acme@example.com", client.Email)

	err = client.UpdateDetails("", "", "", "")
	assert.Error(t, err)
}

func TestClient_HasOutstandingDues(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme Ltd")
	require.NoError(t, err)

	client.TotalDues = decimal.NewFromInt(80)
	assert.True(t, client.HasOutstandingDues())

	// Over-reversal can leave dues negative; that is not outstanding debt
	client.TotalDues = decimal.NewFromInt(-50)
	assert.False(t, client.HasOutstandingDues())
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with zero balances", func(t *testing.T) {
		supplier, err := NewSupplier(uuid.New(), "Parts Co")
		require.NoError(t, err)

		assert.True(t, supplier.TotalDebit.IsZero())
		assert.True(t, supplier.TotalCredit.IsZero())
		assert.True(t, supplier.Payable().IsZero())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSupplier(uuid.New(), "")
		assert.Error(t, err)
	})
}

func TestSupplier_Payable(t *testing.T) {
	supplier, err := NewSupplier(uuid.New(), "Parts Co")
	require.NoError(t, err)

	// Goods receipt 200 -> payable 200; payment 200 -> payable 0
	supplier.TotalDebit = decimal.NewFromInt(200)
	assert.True(t, supplier.Payable().Equal(decimal.NewFromInt(200)))

	supplier.TotalCredit = decimal.NewFromInt(200)
	assert.True(t, supplier.Payable().IsZero())
}
