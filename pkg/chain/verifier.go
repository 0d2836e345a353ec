package chain

import (
	"context"
	"errors"
)

// Payment is the decoded on-chain transfer a tip reference resolves to.
// Addresses are lowercase hex, the amount is in micro-units of the asset.
type Payment struct {
	Sender      string
	Recipient   string
	AmountMicro int64
}

var (
	// ErrTxNotFound means the chain has never seen the reference.
	ErrTxNotFound = errors.New("transaction not found")

	// ErrTxNotConfirmed means the transaction is pending, missing a receipt,
	// or reverted. The reference cannot be accepted in this state.
	ErrTxNotConfirmed = errors.New("transaction not confirmed")

	// ErrWrongDestination means the transaction does not call the payment
	// asset contract.
	ErrWrongDestination = errors.New("transaction is not a payment asset transfer")

	// ErrNoTransferFound means the receipt carries no Transfer event emitted
	// by the payment asset contract.
	ErrNoTransferFound = errors.New("no transfer event found in transaction")

	// ErrTransferDecode means a matching Transfer event exists but its
	// payload cannot be decoded into a payment.
	ErrTransferDecode = errors.New("transfer event could not be decoded")
)

// IsVerificationFailure reports whether err means the reference was inspected
// and rejected, as opposed to the chain being unreachable. Callers use this to
// separate a bad reference from an RPC outage.
func IsVerificationFailure(err error) bool {
	return errors.Is(err, ErrTxNotFound) ||
		errors.Is(err, ErrTxNotConfirmed) ||
		errors.Is(err, ErrWrongDestination) ||
		errors.Is(err, ErrNoTransferFound) ||
		errors.Is(err, ErrTransferDecode)
}

// Verifier resolves a tip reference to the payment it settled on chain.
type Verifier interface {
	// VerifyPayment fetches the referenced transaction and decodes the asset
	// transfer it carries. It returns one of the package sentinel errors when
	// the reference fails verification, and a plain error when the chain
	// could not be consulted.
	VerifyPayment(ctx context.Context, reference string) (*Payment, error)
}
