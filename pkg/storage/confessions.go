package storage

import (
	"context"

	"github.com/BURAK1289/confession-tip/pkg/models"
)

// ConfessionStore defines the interface for confessions and their tip counters.
type ConfessionStore interface {
	// GetConfession retrieves a confession by its ID.
	// It returns ErrConfessionNotFound when no row exists.
	GetConfession(ctx context.Context, id string) (*models.Confession, error)

	// CreateConfession stores a new confession and returns it with
	// server-side fields filled in.
	CreateConfession(ctx context.Context, confession *models.Confession) (*models.Confession, error)

	// ListRecentConfessions retrieves the newest confessions.
	ListRecentConfessions(ctx context.Context, limit int32) ([]models.Confession, error)

	// ListTopConfessions retrieves the most tipped confessions.
	ListTopConfessions(ctx context.Context, limit int32) ([]models.Confession, error)

	// IncrementConfessionTips atomically adds one tip of amountMicro to the
	// confession's counters. It returns ErrConfessionNotFound if the row is
	// missing; the caller is expected to have loaded it already.
	IncrementConfessionTips(ctx context.Context, id string, amountMicro int64) error
}
