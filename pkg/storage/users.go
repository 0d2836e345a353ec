package storage

import (
	"context"

	"github.com/BURAK1289/confession-tip/pkg/models"
)

// UserStore defines the interface for per-address aggregates.
type UserStore interface {
	// GetUser retrieves the stats row for an address.
	// It returns ErrUserNotFound when the address has never been seen.
	GetUser(ctx context.Context, address string) (*models.UserStats, error)

	// EnsureUser returns the stats row for an address, creating it with
	// zeroed totals and a fresh referral code on first touch.
	EnsureUser(ctx context.Context, address string) (*models.UserStats, error)

	// AddUserTipsGiven atomically adds amountMicro to the address's given total.
	AddUserTipsGiven(ctx context.Context, address string, amountMicro int64) error

	// AddUserTipsReceived atomically adds amountMicro to the address's received total.
	AddUserTipsReceived(ctx context.Context, address string, amountMicro int64) error
}
