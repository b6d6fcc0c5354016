package models

import "github.com/shopspring/decimal"

// TransactionKind identifies which rule the state machine applies to an event
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindDispute    TransactionKind = "dispute"
	KindResolve    TransactionKind = "resolve"
	KindChargeback TransactionKind = "chargeback"
)

// Valid reports whether k is one of the five known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return true
	}
	return false
}

// CarriesAmount reports whether events of this kind must come with an amount.
func (k TransactionKind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is one parsed event from the input stream
type Transaction struct {
	Kind   TransactionKind     // which rule applies
	Client uint16              // owning client
	TxID   uint32              // new id for deposit/withdrawal, referenced id otherwise
	Amount decimal.NullDecimal // only valid for deposit/withdrawal
}
