package storage

import (
	"context"

	"github.com/BURAK1289/confession-tip/pkg/models"
)

// Reconciler defines the privileged interface for rebuilding aggregates from
// the ledger. The ledger is the source of truth; counters are derived and may
// briefly trail it, so these operations overwrite rather than increment.
// Only the repair and reconciliation workers should see this interface.
type Reconciler interface {
	// RecomputeSubjectAggregates re-derives a confession's counters from the
	// ledger and corrects them. It reports whether a correction was written.
	RecomputeSubjectAggregates(ctx context.Context, subjectID string) (bool, error)

	// RecomputeUserAggregates re-derives an address's given and received
	// totals from the ledger, creating the stats row if needed.
	RecomputeUserAggregates(ctx context.Context, address string) (bool, error)

	// ScanConfessions pages through every confession. Pass an empty pageToken
	// to start; an empty next token means the sweep is done.
	ScanConfessions(ctx context.Context, pageToken string) (confessions []models.Confession, nextToken string, err error)
}
