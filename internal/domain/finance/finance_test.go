package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientPayment(t *testing.T) {
	t.Run("creates client payment", func(t *testing.T) {
		payment, err := NewClientPayment(uuid.New(), "PAY-00001", uuid.New(), decimal.NewFromInt(50), PaymentCash)
		require.NoError(t, err)

		assert.True(t, payment.IsClientPayment())
		assert.False(t, payment.IsSupplierPayment())
		assert.Nil(t, payment.SupplierID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewClientPayment(uuid.New(), "PAY-00001", uuid.New(), decimal.Zero, PaymentCash)
		assert.Error(t, err)

		_, err = NewClientPayment(uuid.New(), "PAY-00001", uuid.New(), decimal.NewFromInt(-5), PaymentCash)
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewClientPayment(uuid.New(), "PAY-00001", uuid.New(), decimal.NewFromInt(50), PaymentMethod("crypto"))
		assert.Error(t, err)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewClientPayment(uuid.New(), "", uuid.New(), decimal.NewFromInt(50), PaymentCash)
		assert.Error(t, err)
	})
}

func TestNewSupplierPayment(t *testing.T) {
	payment, err := NewSupplierPayment(uuid.New(), "PAY-00002", uuid.New(), decimal.NewFromInt(200), PaymentBankTransfer)
	require.NoError(t, err)

	assert.True(t, payment.IsSupplierPayment())
	assert.False(t, payment.IsClientPayment())
	assert.Nil(t, payment.ClientID)
}

func TestNewCreditNote(t *testing.T) {
	t.Run("creates cancellation note", func(t *testing.T) {
		note, err := NewCreditNote(uuid.New(), "CN-00001", uuid.New(), "Acme Ltd", CreditNoteCancellation, decimal.NewFromInt(130))
		require.NoError(t, err)

		assert.Equal(t, CreditNoteCancellation, note.Type)
		assert.Nil(t, note.OrderID)
		assert.Nil(t, note.StockMovements())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCreditNote(uuid.New(), "CN-00001", uuid.New(), "Acme", CreditNoteReturn, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewCreditNote(uuid.New(), "CN-00001", uuid.New(), "Acme", CreditNoteType("refund"), decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestCreditNote_LinkOrder(t *testing.T) {
	note, err := NewCreditNote(uuid.New(), "CN-00001", uuid.New(), "Acme", CreditNoteCancellation, decimal.NewFromInt(130))
	require.NoError(t, err)

	orderID := uuid.New()
	require.NoError(t, note.LinkOrder(orderID))
	require.NotNil(t, note.OrderID)
	assert.Equal(t, orderID, *note.OrderID)

	assert.Error(t, note.LinkOrder(uuid.Nil))
}

func TestCreditNote_StockMovements(t *testing.T) {
	t.Run("return notes restock", func(t *testing.T) {
		note, err := NewCreditNote(uuid.New(), "CN-00002", uuid.New(), "Acme", CreditNoteReturn, decimal.NewFromInt(20))
		require.NoError(t, err)

		productID := uuid.New()
		_, err = note.AddItem(productID, "Widget", 2, decimal.NewFromInt(10))
		require.NoError(t, err)

		movements := note.StockMovements()
		assert.Equal(t, int64(2), movements[productID])
	})

	t.Run("cancellation notes never restock", func(t *testing.T) {
		note, err := NewCreditNote(uuid.New(), "CN-00003", uuid.New(), "Acme", CreditNoteCancellation, decimal.NewFromInt(20))
		require.NoError(t, err)

		_, err = note.AddItem(uuid.New(), "Widget", 2, decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.Nil(t, note.StockMovements())
	})
}

func TestNewExpense(t *testing.T) {
	t.Run("creates expense", func(t *testing.T) {
		expense, err := NewExpense(uuid.New(), "rent", "warehouse rent", decimal.NewFromInt(1000), time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "rent", expense.Category)
		assert.False(t, expense.ExpenseDate.IsZero())
	})

	t.Run("rejects empty category", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), "", "", decimal.NewFromInt(10), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), "rent", "", decimal.Zero, time.Now())
		assert.Error(t, err)
	})
}

func TestExpense_Update(t *testing.T) {
	expense, err := NewExpense(uuid.New(), "rent", "warehouse rent", decimal.NewFromInt(1000), time.Now())
	require.NoError(t, err)

	err = expense.Update("utilities", "electricity", decimal.NewFromInt(150), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "utilities", expense.Category)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(150)))

	assert.Error(t, expense.Update("", "", decimal.NewFromInt(1), time.Now()))
}
