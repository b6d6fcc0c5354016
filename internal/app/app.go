package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sheikh-saqib/payments-ledger-replay/internal/config"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/events/kafka"
	csvsource "github.com/sheikh-saqib/payments-ledger-replay/internal/ingest/csv"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ingest/sqldb"
	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/replay"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/report"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/storage/memory"
)

type App struct {
	cfg       *config.Config
	log       *logrus.Logger
	out       io.Writer
	publisher interfaces.EventPublisher // nil unless kafka.brokers is set
}

// NewApp wires the output side of a run. The returned cleanup closes the Kafka writer, if any.
func NewApp(cfg *config.Config, log *logrus.Logger, out io.Writer) (*App, func()) {
	a := &App{cfg: cfg, log: log, out: out}
	if cfg.PublishEnabled() {
		a.publisher = kafka.NewPublisher(cfg.Kafka.Brokers)
	}

	cleanup := func() {
		if a.publisher == nil {
			return
		}
		if err := a.publisher.Close(); err != nil {
			log.WithError(err).Warn("error closing kafka publisher")
		}
	}
	return a, cleanup
}

// OpenSource picks the transaction source for the configured driver.
// inputPath is the CSV file and is only used by the csv driver.
func (a *App) OpenSource(ctx context.Context, inputPath string) (interfaces.TransactionSource, error) {
	if a.cfg.Input.Driver == "csv" {
		if inputPath == "" {
			return nil, fmt.Errorf("a transactions file is required")
		}
		src, err := csvsource.Open(inputPath)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	src, err := sqldb.Open(ctx, a.cfg.Input.Driver, a.cfg.Input.DSN, a.cfg.Input.Query)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// Replay processes the whole stream from src and only then renders the final accounts.
// Nothing is rendered when the stream fails part way.
func (a *App) Replay(ctx context.Context, src interfaces.TransactionSource) (replay.Summary, error) {
	store := memory.NewMemoryLedgerStore()
	runner := replay.NewRunner(ledger.NewLedger(store), a.log)

	summary, err := runner.Run(ctx, src)
	if err != nil {
		return summary, err
	}

	accounts := store.Accounts()
	if err := report.NewCSVRenderer(a.out).Render(ctx, accounts); err != nil {
		return summary, fmt.Errorf("failed to render accounts: %w", err)
	}

	// The report is already out; a publish failure must not turn the run into a failure.
	if a.publisher != nil {
		publisher := report.NewPublishingRenderer(a.publisher, a.cfg.Kafka.Topic, summary.RunID)
		if err := publisher.Render(ctx, accounts); err != nil {
			a.log.WithError(err).WithField("run_id", summary.RunID).Warn("failed to publish account snapshots")
		}
	}
	return summary, nil
}

// Run opens the configured source, replays it and closes it.
func (a *App) Run(ctx context.Context, inputPath string) error {
	src, err := a.OpenSource(ctx, inputPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			a.log.WithError(err).Warn("error closing transaction source")
		}
	}()

	_, err = a.Replay(ctx, src)
	return err
}
