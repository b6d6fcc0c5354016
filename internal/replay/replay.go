package replay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
)

// Summary counts what a run did with each event.
type Summary struct {
	RunID     string
	Processed int
	Applied   int
	Ignored   map[ledger.Reason]int
}

// IgnoredTotal returns the number of events dropped for any reason.
func (s Summary) IgnoredTotal() int {
	n := 0
	for _, c := range s.Ignored {
		n += c
	}
	return n
}

// Runner feeds a TransactionSource through a Ledger one event at a time.
type Runner struct {
	ledger *ledger.Ledger
	log    logrus.FieldLogger
}

func NewRunner(l *ledger.Ledger, log logrus.FieldLogger) *Runner {
	return &Runner{
		ledger: l,
		log:    log,
	}
}

// Run consumes src until io.EOF. Each event is fully applied before the next is read.
// A source error aborts the run; the returned Summary then covers only the events
// applied before the failure and must not be reported as a result.
func (r *Runner) Run(ctx context.Context, src interfaces.TransactionSource) (Summary, error) {
	summary := Summary{
		RunID:   uuid.NewString(),
		Ignored: make(map[ledger.Reason]int),
	}
	log := r.log.WithField("run_id", summary.RunID)

	for {
		tx, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.WithError(err).WithField("processed", summary.Processed).Error("replay aborted")
			return summary, fmt.Errorf("replay aborted after %d events: %w", summary.Processed, err)
		}

		summary.Processed++
		outcome := r.ledger.Apply(tx)
		if outcome.IsApplied() {
			summary.Applied++
			continue
		}

		summary.Ignored[outcome.Reason]++
		log.WithFields(logrus.Fields{
			"type":   tx.Kind,
			"client": tx.Client,
			"tx":     tx.TxID,
			"reason": outcome.Reason,
		}).Debug("transaction ignored")
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"applied":   summary.Applied,
		"ignored":   summary.IgnoredTotal(),
	}).Info("replay finished")
	return summary, nil
}
