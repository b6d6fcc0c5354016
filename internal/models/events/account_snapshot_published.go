package events

import (
	"time"
)

// AccountSnapshotPublished carries one client's final balances after a replay run.
// Amounts are pre-formatted with four fractional digits.
type AccountSnapshotPublished struct {
	EventID    string    `json:"event_id"`
	RunID      string    `json:"run_id"`
	Client     uint16    `json:"client"`
	Available  string    `json:"available"`
	Held       string    `json:"held"`
	Total      string    `json:"total"`
	Locked     bool      `json:"locked"`
	OccurredAt time.Time `json:"occurred_at"`
}
