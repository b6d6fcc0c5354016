// Package ingest turns raw records into transaction events for the replay loop.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// Header names the columns every source delivers.
var Header = []string{"type", "client", "tx", "amount"}

// MaxAmountScale bounds the fractional digits an input amount may carry.
const MaxAmountScale = 28

// ParseRecord converts one raw record into a Transaction.
// Expected format: type, client (u16), tx (u32), amount (optional decimal)
func ParseRecord(kind, client, tx, amount string) (models.Transaction, error) {
	k := models.TransactionKind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.Valid() {
		return models.Transaction{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	clientID, err := strconv.ParseUint(strings.TrimSpace(client), 10, 16)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: client %q: %v", ErrMalformedRecord, client, err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(tx), 10, 32)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: tx %q: %v", ErrMalformedRecord, tx, err)
	}

	out := models.Transaction{
		Kind:   k,
		Client: uint16(clientID),
		TxID:   uint32(txID),
	}

	// Dispute, resolve and chargeback reference an existing entry; any amount on them is dropped.
	if !k.CarriesAmount() {
		return out, nil
	}

	raw := strings.TrimSpace(amount)
	if raw == "" {
		return models.Transaction{}, fmt.Errorf("%w: %s tx %d", ErrMissingAmount, k, txID)
	}
	// Exponent notation would let a short field expand into an arbitrarily large number.
	if strings.ContainsAny(raw, "eE") {
		return models.Transaction{}, fmt.Errorf("%w: amount %q: exponent notation not accepted", ErrMalformedRecord, amount)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: amount %q: %v", ErrMalformedRecord, amount, err)
	}
	if value.Exponent() < -MaxAmountScale {
		return models.Transaction{}, fmt.Errorf("%w: amount %q: more than %d fractional digits", ErrMalformedRecord, amount, MaxAmountScale)
	}
	if value.IsNegative() {
		return models.Transaction{}, fmt.Errorf("%w: %s tx %d amount %s", ErrNegativeAmount, k, txID, raw)
	}

	out.Amount = decimal.NewNullDecimal(value)
	return out, nil
}
