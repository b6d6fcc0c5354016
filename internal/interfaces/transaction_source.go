package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
)

// TransactionSource yields parsed events in arrival order.
// Next returns io.EOF once the stream is exhausted; any other error is fatal for the run.
type TransactionSource interface {
	Next(ctx context.Context) (models.Transaction, error)
	Close() error
}
