package tipping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BURAK1289/confession-tip/pkg/chain"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/ratelimit"
	"github.com/BURAK1289/confession-tip/pkg/repairq"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	"github.com/google/uuid"
)

// RateLimitAction is the limiter action under which tips are counted.
const RateLimitAction = "tip"

// AdmitRequest is one attempt to record a tip against a confession.
type AdmitRequest struct {
	SubjectID    string
	PayerAddress string
	Reference    string
}

// Receipt is what an admitted tip returns: the ledger row and the subject
// with its counters after the tip landed.
type Receipt struct {
	Tip     *models.TipRecord
	Subject *models.Confession
}

// Service runs the tip admission pipeline.
type Service struct {
	Store    storage.ApiStore
	Verifier chain.Verifier
	Limiter  ratelimit.Limiter
	// Repairs receives a task whenever counters could not be updated after a
	// ledger insert. Nil disables async repair; the reconciliation sweep
	// still catches the drift.
	Repairs repairq.Queue
	Policy  ratelimit.Policy
}

// NewService wires the pipeline with the default tip policy.
func NewService(store storage.ApiStore, verifier chain.Verifier, limiter ratelimit.Limiter, repairs repairq.Queue) *Service {
	return &Service{
		Store:    store,
		Verifier: verifier,
		Limiter:  limiter,
		Repairs:  repairs,
		Policy:   ratelimit.DefaultTipPolicy,
	}
}

// AdmitTip validates the request, verifies the referenced payment on chain,
// appends the ledger row and bumps the aggregates. It returns a *Rejection
// for every expected refusal; any other error is internal and safe to retry
// with the same reference.
func (s *Service) AdmitTip(ctx context.Context, req AdmitRequest) (*Receipt, error) {
	if req.SubjectID == "" || req.PayerAddress == "" || req.Reference == "" {
		return nil, reject(ReasonInvalidInput, "Missing required fields")
	}
	if _, err := uuid.Parse(req.SubjectID); err != nil {
		return nil, reject(ReasonInvalidInput, "Invalid confession id")
	}
	if !models.ValidAddress(req.PayerAddress) {
		return nil, reject(ReasonInvalidInput, "Invalid payer address")
	}
	if !models.ValidReference(req.Reference) {
		return nil, reject(ReasonInvalidInput, "Invalid transaction reference")
	}
	payer := models.NormalizeAddress(req.PayerAddress)

	// Replays are answered before the rate check so they never consume quota.
	if _, err := s.Store.FindTipByReference(ctx, req.Reference); err == nil {
		return nil, reject(ReasonDuplicate, "This transaction has already been recorded")
	} else if !errors.Is(err, storage.ErrTipNotFound) {
		return nil, fmt.Errorf("failed to check reference: %w", err)
	}

	limit, err := s.Limiter.Check(ctx, payer, RateLimitAction, s.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !limit.Allowed {
		return nil, &Rejection{
			Reason:     ReasonRateLimited,
			Message:    "Tip limit reached. Try again later.",
			RetryAfter: limit.RetryAfter,
		}
	}

	subject, err := s.Store.GetConfession(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, storage.ErrConfessionNotFound) {
			return nil, reject(ReasonSubjectNotFound, "Confession not found")
		}
		return nil, fmt.Errorf("failed to load confession: %w", err)
	}

	if models.SameAddress(payer, subject.OwnerAddress) {
		return nil, reject(ReasonSelfTip, "Cannot tip your own confession")
	}

	payment, err := s.Verifier.VerifyPayment(ctx, req.Reference)
	if err != nil {
		if chain.IsVerificationFailure(err) {
			return nil, &Rejection{
				Reason:  ReasonNotVerified,
				Message: fmt.Sprintf("Payment could not be verified: %s", err),
				Cause:   err,
			}
		}
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}

	// The chain is the authority on who paid. A mismatch here also covers the
	// owner tipping themselves under a borrowed payer address.
	if !models.SameAddress(payment.Sender, payer) {
		slog.Warn("tip sender mismatch",
			"claimed", payer,
			"verified", payment.Sender,
			"reference", req.Reference,
		)
		return nil, reject(ReasonSenderMismatch, "Transaction sender does not match payer")
	}

	if payment.AmountMicro < models.MinTipMicro || payment.AmountMicro > models.MaxTipMicro {
		return nil, reject(ReasonAmountOutOfRange, "Tip amount must be between 0.001 and 1.0")
	}

	if _, err := s.Store.EnsureUser(ctx, payer); err != nil {
		return nil, fmt.Errorf("failed to ensure payer stats: %w", err)
	}
	if _, err := s.Store.EnsureUser(ctx, subject.OwnerAddress); err != nil {
		return nil, fmt.Errorf("failed to ensure owner stats: %w", err)
	}

	// The ledger insert is the point of no return. InsertTip resolves
	// concurrent submissions of one reference to a single winner.
	tip, err := s.Store.InsertTip(ctx, &models.TipRecord{
		SubjectID:    subject.ID,
		PayerAddress: payer,
		OwnerAddress: models.NormalizeAddress(subject.OwnerAddress),
		AmountMicro:  payment.AmountMicro,
		Reference:    req.Reference,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateReference) {
			return nil, reject(ReasonDuplicate, "This transaction has already been recorded")
		}
		return nil, fmt.Errorf("failed to record tip: %w", err)
	}

	if err := s.applyAggregates(ctx, tip); err != nil {
		return nil, s.failAggregates(ctx, tip, err)
	}

	return s.buildReceipt(ctx, tip, subject), nil
}

func (s *Service) applyAggregates(ctx context.Context, tip *models.TipRecord) error {
	if err := s.Store.IncrementConfessionTips(ctx, tip.SubjectID, tip.AmountMicro); err != nil {
		return fmt.Errorf("confession counters: %w", err)
	}
	if err := s.Store.AddUserTipsGiven(ctx, tip.PayerAddress, tip.AmountMicro); err != nil {
		return fmt.Errorf("payer totals: %w", err)
	}
	if err := s.Store.AddUserTipsReceived(ctx, tip.OwnerAddress, tip.AmountMicro); err != nil {
		return fmt.Errorf("owner totals: %w", err)
	}
	return nil
}

// failAggregates handles a counter update that failed after the ledger row
// was written. The caller gets a retriable internal error, never a success: a
// retry with the same reference folds into DuplicateTip while the repair task
// recomputes the counters from the ledger.
func (s *Service) failAggregates(ctx context.Context, tip *models.TipRecord, cause error) error {
	slog.Error("tip recorded but aggregate update failed",
		"subjectId", tip.SubjectID,
		"payer", tip.PayerAddress,
		"reference", tip.Reference,
		"amountMicro", tip.AmountMicro,
		"error", cause,
	)

	if s.Repairs != nil {
		task := &repairq.Task{
			SubjectID:    tip.SubjectID,
			PayerAddress: tip.PayerAddress,
			OwnerAddress: tip.OwnerAddress,
			Reference:    tip.Reference,
		}
		if err := s.Repairs.EnqueueRepair(ctx, task); err != nil {
			slog.Error("failed to enqueue repair task", "reference", tip.Reference, "error", err)
		}
	}

	return fmt.Errorf("tip recorded but counters pending repair: %w", cause)
}

// buildReceipt re-reads the subject so the response carries the counters as
// settled, falling back to a locally bumped snapshot if the read fails.
func (s *Service) buildReceipt(ctx context.Context, tip *models.TipRecord, seen *models.Confession) *Receipt {
	subject, err := s.Store.GetConfession(ctx, tip.SubjectID)
	if err != nil {
		slog.Warn("failed to re-read confession after tip", "subjectId", tip.SubjectID, "error", err)
		bumped := *seen
		bumped.TotalTipsMicro += tip.AmountMicro
		bumped.TipCount++
		subject = &bumped
	}

	return &Receipt{Tip: tip, Subject: subject}
}
