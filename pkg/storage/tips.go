package storage

import (
	"context"

	"github.com/BURAK1289/confession-tip/pkg/models"
)

// TipReader defines the interface for reading ledger rows.
type TipReader interface {
	// FindTipByReference retrieves a tip by its on-chain reference.
	// It returns ErrTipNotFound when the reference has never been recorded.
	FindTipByReference(ctx context.Context, reference string) (*models.TipRecord, error)

	// ListTipsBySubject retrieves the most recent tips for a confession.
	ListTipsBySubject(ctx context.Context, subjectID string, limit int32) ([]models.TipRecord, error)
}

// TipWriter defines the interface for appending to the ledger.
type TipWriter interface {
	// InsertTip appends a new ledger row and returns it with server-side
	// fields filled in. It returns ErrDuplicateReference when a row with the
	// same reference already exists; under concurrent inserts of one
	// reference exactly one caller succeeds.
	InsertTip(ctx context.Context, tip *models.TipRecord) (*models.TipRecord, error)
}

// TipLedger combines the reader and writer interfaces.
type TipLedger interface {
	TipReader
	TipWriter
}
