package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// parseFields calls ParseRecord with a positional record whose amount may be left off.
func parseFields(fields []string) (models.Transaction, error) {
	amount := ""
	if len(fields) == 4 {
		amount = fields[3]
	}
	return ParseRecord(fields[0], fields[1], fields[2], amount)
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   models.Transaction
	}{
		{
			name:   "deposit",
			fields: []string{"deposit", "1", "1", "1.0"},
			want:   models.Transaction{Kind: models.KindDeposit, Client: 1, TxID: 1, Amount: decimal.NewNullDecimal(decimal.RequireFromString("1.0"))},
		},
		{
			name:   "withdrawal with padding and upper case",
			fields: []string{" Withdrawal", " 65535", " 4294967295", " 2.5678 "},
			want:   models.Transaction{Kind: models.KindWithdrawal, Client: 65535, TxID: 4294967295, Amount: decimal.NewNullDecimal(decimal.RequireFromString("2.5678"))},
		},
		{
			name:   "dispute without amount column",
			fields: []string{"dispute", "2", "7"},
			want:   models.Transaction{Kind: models.KindDispute, Client: 2, TxID: 7},
		},
		{
			name:   "resolve with empty amount",
			fields: []string{"resolve", "2", "7", ""},
			want:   models.Transaction{Kind: models.KindResolve, Client: 2, TxID: 7},
		},
		{
			name:   "chargeback amount is dropped",
			fields: []string{"chargeback", "2", "7", "3.0"},
			want:   models.Transaction{Kind: models.KindChargeback, Client: 2, TxID: 7},
		},
		{
			name:   "longest accepted fraction",
			fields: []string{"deposit", "3", "9", "0.0000000000000000000000000001"},
			want:   models.Transaction{Kind: models.KindDeposit, Client: 3, TxID: 9, Amount: decimal.NewNullDecimal(decimal.New(1, -28))},
		},
		{
			name:   "zero deposit passes through",
			fields: []string{"deposit", "3", "8", "0"},
			want:   models.Transaction{Kind: models.KindDeposit, Client: 3, TxID: 8, Amount: decimal.NewNullDecimal(decimal.Zero)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFields(tt.fields)
			require.NoError(t, err)

			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.Client, got.Client)
			assert.Equal(t, tt.want.TxID, got.TxID)
			assert.Equal(t, tt.want.Amount.Valid, got.Amount.Valid)
			if tt.want.Amount.Valid {
				assert.True(t, tt.want.Amount.Decimal.Equal(got.Amount.Decimal), "amount %s != %s", tt.want.Amount.Decimal, got.Amount.Decimal)
			}
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		err    error
	}{
		{"unknown type", []string{"transfer", "1", "1", "1.0"}, ErrUnknownKind},
		{"client out of range", []string{"deposit", "65536", "1", "1.0"}, ErrMalformedRecord},
		{"negative client", []string{"deposit", "-1", "1", "1.0"}, ErrMalformedRecord},
		{"tx not a number", []string{"deposit", "1", "abc", "1.0"}, ErrMalformedRecord},
		{"tx out of range", []string{"deposit", "1", "4294967296", "1.0"}, ErrMalformedRecord},
		{"deposit missing amount", []string{"deposit", "1", "1", ""}, ErrMissingAmount},
		{"withdrawal without amount column", []string{"withdrawal", "1", "1"}, ErrMissingAmount},
		{"amount not a number", []string{"deposit", "1", "1", "ten"}, ErrMalformedRecord},
		{"negative amount", []string{"withdrawal", "1", "1", "-2"}, ErrNegativeAmount},
		{"exponent amount", []string{"deposit", "1", "1", "1e200000000"}, ErrMalformedRecord},
		{"upper case exponent amount", []string{"withdrawal", "1", "1", "2.5E3"}, ErrMalformedRecord},
		{"too many fractional digits", []string{"deposit", "1", "1", "0.00000000000000000000000000001"}, ErrMalformedRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFields(tt.fields)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
