package tipping

import (
	"fmt"
	"time"
)

// Reason classifies why a tip failed admission.
type Reason string

const (
	ReasonInvalidInput     Reason = "invalid_input"
	ReasonDuplicate        Reason = "duplicate_tip"
	ReasonRateLimited      Reason = "rate_limited"
	ReasonSubjectNotFound  Reason = "subject_not_found"
	ReasonSelfTip          Reason = "self_tip"
	ReasonNotVerified      Reason = "payment_not_verified"
	ReasonSenderMismatch   Reason = "sender_mismatch"
	ReasonAmountOutOfRange Reason = "amount_out_of_range"
)

// Rejection is the typed outcome of a tip the pipeline refused. It is an
// expected result, not an internal fault; handlers map the reason to a status
// code and show the message as-is.
type Rejection struct {
	Reason  Reason
	Message string
	// RetryAfter is set for rate-limited rejections.
	RetryAfter time.Duration
	// Cause carries the verifier sentinel for unverified payments.
	Cause error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("tip rejected (%s): %s", r.Reason, r.Message)
}

// Unwrap exposes the underlying cause, when one exists.
func (r *Rejection) Unwrap() error {
	return r.Cause
}

func reject(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}
