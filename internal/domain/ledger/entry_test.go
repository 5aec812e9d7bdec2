package ledger

import (
	"testing"
	"time"

	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryType(t *testing.T) {
	assert.True(t, EntryTypeDebit.IsValid())
	assert.True(t, EntryTypeCredit.IsValid())
	assert.False(t, EntryType("transfer").IsValid())

	assert.Equal(t, int64(1), EntryTypeDebit.Effect())
	assert.Equal(t, int64(-1), EntryTypeCredit.Effect())
}

func TestNewEntry(t *testing.T) {
	accountID := uuid.New()
	customerID := uuid.New()
	date := time.Now()
	amount := valueobject.NewMoneyINRFromInt(1180)

	t.Run("valid entry", func(t *testing.T) {
		entry, err := NewEntry(accountID, customerID, date, EntryTypeDebit, amount, "Invoice INV/26/001", nil)
		require.NoError(t, err)
		assert.Equal(t, EntryTypeDebit, entry.Type)
		assert.True(t, entry.Amount.Equals(amount))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewEntry(accountID, customerID, date, EntryTypeDebit, valueobject.ZeroINR(), "", nil)
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewEntry(accountID, customerID, date, EntryTypeCredit, valueobject.NewMoneyINRFromInt(-5), "", nil)
		assert.Error(t, err)
	})

	t.Run("missing customer rejected", func(t *testing.T) {
		_, err := NewEntry(accountID, uuid.Nil, date, EntryTypeDebit, amount, "", nil)
		assert.Error(t, err)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := NewEntry(accountID, customerID, date, EntryType("transfer"), amount, "", nil)
		assert.Error(t, err)
	})
}

func TestEntry_SignedAmount(t *testing.T) {
	accountID := uuid.New()
	customerID := uuid.New()
	date := time.Now()

	debit, err := NewEntry(accountID, customerID, date, EntryTypeDebit, valueobject.NewMoneyINRFromInt(100), "", nil)
	require.NoError(t, err)
	assert.True(t, debit.SignedAmount().Equals(valueobject.NewMoneyINRFromInt(100)))

	credit, err := NewEntry(accountID, customerID, date, EntryTypeCredit, valueobject.NewMoneyINRFromInt(100), "", nil)
	require.NoError(t, err)
	assert.True(t, credit.SignedAmount().Equals(valueobject.NewMoneyINRFromInt(-100)))
}
