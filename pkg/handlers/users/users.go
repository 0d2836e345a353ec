package users

import (
	"log/slog"
	"net/http"

	"github.com/BURAK1289/confession-tip/pkg/api"
	"github.com/BURAK1289/confession-tip/pkg/mapping"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/storage"
)

// UsersHandler holds the dependencies for user-stats handlers.
type UsersHandler struct {
	Store storage.UserStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store storage.UserStore) *UsersHandler {
	return &UsersHandler{Store: store}
}

// GetUserByAddress handles the logic for retrieving an address's stats.
// Stats rows are created lazily, so an address nobody has seen before reads
// as zero totals with a fresh referral code rather than a 404.
func (h *UsersHandler) GetUserByAddress(w http.ResponseWriter, r *http.Request, address string) {
	if !models.ValidAddress(address) {
		api.WriteError(w, http.StatusBadRequest, "Invalid address")
		return
	}

	user, err := h.Store.EnsureUser(r.Context(), address)
	if err != nil {
		slog.Error("failed to load user stats", "address", address, "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	api.WriteJSON(w, http.StatusOK, mapping.ToApiUserStats(user))
}
