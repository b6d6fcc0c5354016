package memory

import (
	"sort"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"                // domain models: Account, LedgerEntry
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It is owned by a single replay run and is not safe for concurrent use.
type MemoryLedgerStore struct {
	accounts map[uint16]*models.Account     // client id -> account
	entries  map[uint32]*models.LedgerEntry // tx id -> deposit/withdrawal entry
}

// NewMemoryLedgerStore creates and returns an empty MemoryLedgerStore
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		accounts: make(map[uint16]*models.Account),
		entries:  make(map[uint32]*models.LedgerEntry),
	}
}

// GetOrCreateAccount returns the account for client, inserting a zeroed one if it is unknown.
func (m *MemoryLedgerStore) GetOrCreateAccount(client uint16) *models.Account {
	if acc, ok := m.accounts[client]; ok {
		return acc
	}
	acc := models.NewAccount(client)
	m.accounts[client] = acc
	return acc
}

// GetAccount looks up an account without creating it.
func (m *MemoryLedgerStore) GetAccount(client uint16) (*models.Account, bool) {
	acc, ok := m.accounts[client]
	return acc, ok
}

// RecordEntry stores entry under its tx id. A reused tx id replaces the previous entry.
func (m *MemoryLedgerStore) RecordEntry(entry models.LedgerEntry) {
	e := entry
	m.entries[entry.TxID] = &e
}

// GetEntry returns the entry recorded under txID, if any.
func (m *MemoryLedgerStore) GetEntry(txID uint32) (*models.LedgerEntry, bool) {
	e, ok := m.entries[txID]
	return e, ok
}

// Accounts returns a snapshot of every known account, ordered by client id.
// The copies are detached from the store so renderers can't modify internal state.
func (m *MemoryLedgerStore) Accounts() []models.AccountSnapshot {
	snapshots := make([]models.AccountSnapshot, 0, len(m.accounts))
	for _, acc := range m.accounts {
		snapshots = append(snapshots, acc.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Client < snapshots[j].Client
	})
	return snapshots
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
