package models

import "github.com/shopspring/decimal"

// Account holds the balances of a single client
type Account struct {
	Client    uint16
	Available decimal.Decimal // usable for withdrawals, may go negative after a dispute
	Held      decimal.Decimal // frozen by open disputes
	Total     decimal.Decimal // Available + Held
	Locked    bool            // set by a chargeback and never cleared
}

// NewAccount returns a zeroed, unlocked account for client.
func NewAccount(client uint16) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Balanced reports whether Total == Available + Held holds exactly.
func (a *Account) Balanced() bool {
	return a.Total.Equal(a.Available.Add(a.Held))
}

// Snapshot copies the account into a value the renderers can keep.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total,
		Locked:    a.Locked,
	}
}

// AccountSnapshot is the read-only view of an account handed to renderers
type AccountSnapshot struct {
	Client    uint16          `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

// AmountPrecision is the number of fractional digits every report uses.
const AmountPrecision = 4

// FormatAmount renders d with exactly AmountPrecision fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPrecision)
}
