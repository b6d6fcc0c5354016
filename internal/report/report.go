// Package report renders final account state once a replay has finished.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	interfaces "github.com/sheikh-saqib/payments-ledger-replay/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models"
	"github.com/sheikh-saqib/payments-ledger-replay/internal/models/events"
)

// Renderer receives every known account exactly once per run.
type Renderer interface {
	Render(ctx context.Context, accounts []models.AccountSnapshot) error
}

var csvHeader = []string{"client", "available", "held", "total", "locked"}

// CSVRenderer writes one row per account with four fractional digits on every amount.
type CSVRenderer struct {
	w io.Writer
}

func NewCSVRenderer(w io.Writer) *CSVRenderer {
	return &CSVRenderer{w: w}
}

func (r *CSVRenderer) Render(_ context.Context, accounts []models.AccountSnapshot) error {
	writer := csv.NewWriter(r.w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.Client), 10),
			models.FormatAmount(acc.Available),
			models.FormatAmount(acc.Held),
			models.FormatAmount(acc.Total),
			strconv.FormatBool(acc.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write account %d: %w", acc.Client, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// PublishingRenderer sends each account as an AccountSnapshotPublished event.
type PublishingRenderer struct {
	publisher interfaces.EventPublisher
	topic     string
	runID     string
	now       func() time.Time
}

func NewPublishingRenderer(publisher interfaces.EventPublisher, topic, runID string) *PublishingRenderer {
	return &PublishingRenderer{
		publisher: publisher,
		topic:     topic,
		runID:     runID,
		now:       time.Now,
	}
}

func (r *PublishingRenderer) Render(ctx context.Context, accounts []models.AccountSnapshot) error {
	occurredAt := r.now().UTC()
	for _, acc := range accounts {
		event := events.AccountSnapshotPublished{
			EventID:    uuid.NewString(),
			RunID:      r.runID,
			Client:     acc.Client,
			Available:  models.FormatAmount(acc.Available),
			Held:       models.FormatAmount(acc.Held),
			Total:      models.FormatAmount(acc.Total),
			Locked:     acc.Locked,
			OccurredAt: occurredAt,
		}
		key := strconv.FormatUint(uint64(acc.Client), 10)
		if err := r.publisher.Publish(ctx, r.topic, key, event); err != nil {
			return fmt.Errorf("failed to publish snapshot for client %d: %w", acc.Client, err)
		}
	}
	return nil
}

var (
	_ Renderer = (*CSVRenderer)(nil)
	_ Renderer = (*PublishingRenderer)(nil)
)
