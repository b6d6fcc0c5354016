package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

func TestGetOrCreateAccountInsertsZeroedAccount(t *testing.T) {
	store := NewMemoryLedgerStore()

	acc := store.GetOrCreateAccount(7)

	require.NotNil(t, acc)
	assert.Equal(t, uint16(7), acc.Client)
	assert.True(t, acc.Available.IsZero())
	assert.True(t, acc.Held.IsZero())
	assert.True(t, acc.Total.IsZero())
	assert.False(t, acc.Locked)
}

func TestGetOrCreateAccountReturnsSameAccount(t *testing.T) {
	store := NewMemoryLedgerStore()

	first := store.GetOrCreateAccount(1)
	first.Available = decimal.NewFromInt(5)
	second := store.GetOrCreateAccount(1)

	assert.Same(t, first, second)
	assert.True(t, second.Available.Equal(decimal.NewFromInt(5)))
}

func TestGetAccountDoesNotCreate(t *testing.T) {
	store := NewMemoryLedgerStore()

	acc, ok := store.GetAccount(3)

	assert.False(t, ok)
	assert.Nil(t, acc)
	assert.Empty(t, store.Accounts())
}

func TestRecordEntryLastWriteWins(t *testing.T) {
	store := NewMemoryLedgerStore()

	store.RecordEntry(models.LedgerEntry{TxID: 1, Client: 1, Amount: decimal.NewFromInt(10), Kind: models.KindDeposit})
	store.RecordEntry(models.LedgerEntry{TxID: 1, Client: 2, Amount: decimal.NewFromInt(3), Kind: models.KindWithdrawal})

	entry, ok := store.GetEntry(1)
	require.True(t, ok)
	assert.Equal(t, uint16(2), entry.Client)
	assert.Equal(t, models.KindWithdrawal, entry.Kind)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(3)))
}

func TestRecordEntryCopiesValue(t *testing.T) {
	store := NewMemoryLedgerStore()
	entry := models.LedgerEntry{TxID: 9, Client: 1, Amount: decimal.NewFromInt(10), Kind: models.KindDeposit}

	store.RecordEntry(entry)
	entry.Disputed = true

	stored, ok := store.GetEntry(9)
	require.True(t, ok)
	assert.False(t, stored.Disputed)

	stored.Disputed = true
	again, _ := store.GetEntry(9)
	assert.True(t, again.Disputed)
}

func TestAccountsSortedAndDetached(t *testing.T) {
	store := NewMemoryLedgerStore()
	store.GetOrCreateAccount(3)
	store.GetOrCreateAccount(1)
	store.GetOrCreateAccount(2).Total = decimal.NewFromInt(4)

	snapshots := store.Accounts()

	require.Len(t, snapshots, 3)
	assert.Equal(t, []uint16{1, 2, 3}, []uint16{snapshots[0].Client, snapshots[1].Client, snapshots[2].Client})

	snapshots[1].Total = decimal.NewFromInt(100)
	acc, _ := store.GetAccount(2)
	assert.True(t, acc.Total.Equal(decimal.NewFromInt(4)))
}
