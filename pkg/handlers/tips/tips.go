package tips

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BURAK1289/confession-tip/pkg/api"
	"github.com/BURAK1289/confession-tip/pkg/feed"
	"github.com/BURAK1289/confession-tip/pkg/mapping"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/ratelimit"
	"github.com/BURAK1289/confession-tip/pkg/tipping"
)

// TipsHandler holds the dependencies for tip-related handlers.
type TipsHandler struct {
	Service   *tipping.Service
	Publisher feed.Publisher
}

// NewTipsHandler creates a new TipsHandler.
func NewTipsHandler(service *tipping.Service, publisher feed.Publisher) *TipsHandler {
	return &TipsHandler{Service: service, Publisher: publisher}
}

// RecordTip handles the logic for admitting a claimed tip payment. All the
// actual verification lives in the tipping service; this handler translates
// its outcome onto the wire.
func (h *TipsHandler) RecordTip(w http.ResponseWriter, r *http.Request, confessionId string) {
	var newTip api.NewTip
	if err := json.NewDecoder(r.Body).Decode(&newTip); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.AdmitTip(r.Context(), tipping.AdmitRequest{
		SubjectID:    confessionId,
		PayerAddress: newTip.PayerAddress,
		Reference:    newTip.Reference,
	})
	if err != nil {
		h.writeAdmitError(w, err)
		return
	}

	if h.Publisher != nil {
		message := feed.Message{
			Type: feed.MessageTypeTip,
			Payload: feed.TipPayload{
				SubjectID:      receipt.Tip.SubjectID,
				Amount:         models.FormatMicro(receipt.Tip.AmountMicro),
				AmountMicro:    receipt.Tip.AmountMicro,
				TotalTipsMicro: receipt.Subject.TotalTipsMicro,
				TipCount:       receipt.Subject.TipCount,
			},
		}
		if err := h.Publisher.Publish(r.Context(), message); err != nil {
			// The tip is recorded either way; the live feed is best effort.
			slog.Error("failed to publish tip to feed", "reference", receipt.Tip.Reference, "error", err)
		}
	}

	api.WriteJSON(w, http.StatusCreated, api.TipReceipt{
		Tip:        *mapping.ToApiTip(receipt.Tip),
		Confession: *mapping.ToApiConfession(receipt.Subject),
	})
}

// writeAdmitError maps a pipeline outcome onto a status code. Rejections keep
// their specific message; anything else is an internal fault the client may
// retry with the same reference.
func (h *TipsHandler) writeAdmitError(w http.ResponseWriter, err error) {
	var rejection *tipping.Rejection
	if !errors.As(err, &rejection) {
		slog.Error("tip admission failed", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if rejection.Reason == tipping.ReasonRateLimited {
		seconds := ratelimit.RetrySeconds(rejection.RetryAfter)
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		api.WriteJSON(w, http.StatusTooManyRequests, api.Error{
			Error:             rejection.Message,
			RetryAfterSeconds: &seconds,
		})
		return
	}

	api.WriteError(w, statusFor(rejection.Reason), rejection.Message)
}

func statusFor(reason tipping.Reason) int {
	switch reason {
	case tipping.ReasonDuplicate:
		return http.StatusConflict
	case tipping.ReasonSubjectNotFound:
		return http.StatusNotFound
	case tipping.ReasonRateLimited:
		return http.StatusTooManyRequests
	default:
		// Invalid input, self tips, unverified payments, sender mismatches
		// and out-of-range amounts are all caller errors.
		return http.StatusBadRequest
	}
}
