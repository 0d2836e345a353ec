package confessions

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/BURAK1289/confession-tip/pkg/api"
	"github.com/BURAK1289/confession-tip/pkg/feed"
	"github.com/BURAK1289/confession-tip/pkg/mapping"
	"github.com/BURAK1289/confession-tip/pkg/moderation"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/storage"
)

// defaultListLimit is how many confessions a listing returns when the client
// does not ask for a specific page size.
const defaultListLimit = int32(20)

// ConfessionsHandler holds the dependencies for confession-related handlers.
type ConfessionsHandler struct {
	Store      storage.ApiStore
	Classifier moderation.Classifier
	Publisher  feed.Publisher
}

// NewConfessionsHandler creates a new ConfessionsHandler.
func NewConfessionsHandler(store storage.ApiStore, classifier moderation.Classifier, publisher feed.Publisher) *ConfessionsHandler {
	return &ConfessionsHandler{Store: store, Classifier: classifier, Publisher: publisher}
}

// CreateConfession handles the logic for posting a new confession.
func (h *ConfessionsHandler) CreateConfession(w http.ResponseWriter, r *http.Request) {
	var newConfession api.NewConfession
	if err := json.NewDecoder(r.Body).Decode(&newConfession); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidAddress(newConfession.OwnerAddress) {
		api.WriteError(w, http.StatusBadRequest, "Invalid owner address")
		return
	}
	content := strings.TrimSpace(newConfession.Content)
	if content == "" {
		api.WriteError(w, http.StatusBadRequest, "Confession content is required")
		return
	}
	if utf8.RuneCountInString(content) > models.MaxConfessionLength {
		api.WriteError(w, http.StatusBadRequest, "Confession is too long")
		return
	}
	newConfession.Content = content

	domainConfession := mapping.ToDomainNewConfession(&newConfession)

	// Classifier outages fail open: an unreviewed confession is better than a
	// dead submit button. A flagged verdict still blocks the post.
	verdict, err := h.Classifier.Classify(r.Context(), content)
	if err != nil {
		slog.Warn("moderation unavailable, accepting unreviewed confession", "error", err)
		domainConfession.Category = moderation.DefaultCategory
	} else {
		if verdict.Flagged {
			api.WriteError(w, http.StatusBadRequest, "This confession violates community guidelines")
			return
		}
		domainConfession.Category = verdict.Category
	}

	created, err := h.Store.CreateConfession(r.Context(), domainConfession)
	if err != nil {
		slog.Error("failed to create confession", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	// First reference to the owner address: give them a stats row. The tip
	// pipeline re-ensures it later, so a failure here only costs a log line.
	if _, err := h.Store.EnsureUser(r.Context(), created.OwnerAddress); err != nil {
		slog.Warn("failed to ensure owner stats", "error", err)
	}

	if h.Publisher != nil {
		message := feed.Message{
			Type: feed.MessageTypeConfession,
			Payload: feed.ConfessionPayload{
				ID:       created.ID,
				Content:  created.Content,
				Category: created.Category,
			},
		}
		if err := h.Publisher.Publish(r.Context(), message); err != nil {
			slog.Error("failed to publish confession to feed", "error", err)
		}
	}

	api.WriteJSON(w, http.StatusCreated, mapping.ToApiConfession(created))
}

// GetConfessionById handles the logic for retrieving one confession.
func (h *ConfessionsHandler) GetConfessionById(w http.ResponseWriter, r *http.Request, confessionId string) {
	confession, err := h.Store.GetConfession(r.Context(), confessionId)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "Confession not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiConfession(confession))
}

// ListConfessions handles the logic for the recent-confessions feed.
func (h *ConfessionsHandler) ListConfessions(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Store.ListRecentConfessions)
}

// GetLeaderboard handles the logic for the most-tipped listing.
func (h *ConfessionsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.Store.ListTopConfessions)
}

func (h *ConfessionsHandler) list(w http.ResponseWriter, r *http.Request, query func(ctx context.Context, limit int32) ([]models.Confession, error)) {
	limit, err := api.BindLimit(r, defaultListLimit)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	domainConfessions, err := query(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list confessions", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	apiConfessions := make([]*api.Confession, len(domainConfessions))
	for i, confession := range domainConfessions {
		apiConfessions[i] = mapping.ToApiConfession(&confession)
	}

	api.WriteJSON(w, http.StatusOK, apiConfessions)
}

// ListConfessionTips handles the logic for a confession's recent tips.
func (h *ConfessionsHandler) ListConfessionTips(w http.ResponseWriter, r *http.Request, confessionId string) {
	limit, err := api.BindLimit(r, defaultListLimit)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}

	if _, err := h.Store.GetConfession(r.Context(), confessionId); err != nil {
		api.WriteError(w, http.StatusNotFound, "Confession not found")
		return
	}

	domainTips, err := h.Store.ListTipsBySubject(r.Context(), confessionId, limit)
	if err != nil {
		slog.Error("failed to list tips", "confessionId", confessionId, "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	apiTips := make([]*api.Tip, len(domainTips))
	for i, tip := range domainTips {
		apiTips[i] = mapping.ToApiTip(&tip)
	}

	api.WriteJSON(w, http.StatusOK, apiTips)
}
