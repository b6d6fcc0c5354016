package models

import (
	"github.com/shopspring/decimal"
)

// LedgerEntry is the retained record of a deposit or withdrawal, kept so that
// a later dispute, resolve or chargeback can find it by tx id.
type LedgerEntry struct {
	TxID     uint32          // unique among deposits and withdrawals
	Client   uint16          // which client this entry belongs to
	Amount   decimal.Decimal // always positive
	Kind     TransactionKind // KindDeposit or KindWithdrawal
	Disputed bool            // true while a dispute is open, stays true after a chargeback
}
