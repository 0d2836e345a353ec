package storage

import "errors"

// ErrDuplicateReference is returned when inserting a tip whose reference is
// already present in the ledger. The caller treats it as a benign replay.
var ErrDuplicateReference = errors.New("reference already recorded")

// ErrTipNotFound is returned when no ledger row matches a reference.
var ErrTipNotFound = errors.New("tip not found")

// ErrConfessionNotFound is returned when a confession id has no row.
var ErrConfessionNotFound = errors.New("confession not found")

// ErrUserNotFound is returned when an address has no stats row.
var ErrUserNotFound = errors.New("user not found")
