package interfaces

import (
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// LedgerStore owns client accounts and the deposit/withdrawal entries that
// disputes refer back to. Returned pointers are live: callers mutate them in place.
type LedgerStore interface {
	GetOrCreateAccount(client uint16) *models.Account
	GetAccount(client uint16) (*models.Account, bool)
	RecordEntry(entry models.LedgerEntry)
	GetEntry(txID uint32) (*models.LedgerEntry, bool)
	Accounts() []models.AccountSnapshot
}
