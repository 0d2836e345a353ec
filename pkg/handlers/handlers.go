package handlers

import (
	"log/slog"
	"net/http"

	"github.com/BURAK1289/confession-tip/pkg/feed"
	"github.com/BURAK1289/confession-tip/pkg/handlers/confessions"
	"github.com/BURAK1289/confession-tip/pkg/handlers/tips"
	"github.com/BURAK1289/confession-tip/pkg/handlers/users"
	custommw "github.com/BURAK1289/confession-tip/pkg/middleware"
	"github.com/BURAK1289/confession-tip/pkg/moderation"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	"github.com/BURAK1289/confession-tip/pkg/tipping"
	"github.com/go-chi/chi/v5"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Store      storage.ApiStore
	Tips       *tipping.Service
	Classifier moderation.Classifier
	Hub        *feed.Hub
}

// NewRouter mounts all resource handlers on a chi router with request
// logging. The websocket feed hub is optional; without one the /ws/feed
// route is simply not registered.
func NewRouter(deps Deps) *chi.Mux {
	var publisher feed.Publisher
	if deps.Hub != nil {
		publisher = deps.Hub
	}

	confessionsHandler := confessions.NewConfessionsHandler(deps.Store, deps.Classifier, publisher)
	tipsHandler := tips.NewTipsHandler(deps.Tips, publisher)
	usersHandler := users.NewUsersHandler(deps.Store)

	router := chi.NewRouter()
	router.Use(custommw.RequestLogger(slog.Default()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/confessions", func(r chi.Router) {
		r.Post("/", confessionsHandler.CreateConfession)
		r.Get("/", confessionsHandler.ListConfessions)
		r.Get("/leaderboard", confessionsHandler.GetLeaderboard)
		r.Get("/{confessionId}", func(w http.ResponseWriter, r *http.Request) {
			confessionsHandler.GetConfessionById(w, r, chi.URLParam(r, "confessionId"))
		})
		r.Get("/{confessionId}/tips", func(w http.ResponseWriter, r *http.Request) {
			confessionsHandler.ListConfessionTips(w, r, chi.URLParam(r, "confessionId"))
		})
		r.Post("/{confessionId}/tips", func(w http.ResponseWriter, r *http.Request) {
			tipsHandler.RecordTip(w, r, chi.URLParam(r, "confessionId"))
		})
	})

	router.Get("/users/{address}", func(w http.ResponseWriter, r *http.Request) {
		usersHandler.GetUserByAddress(w, r, chi.URLParam(r, "address"))
	})

	if deps.Hub != nil {
		router.Get("/ws/feed", deps.Hub.ServeWS)
	}

	return router
}
