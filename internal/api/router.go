package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch-go/internal/api/handler"
	"github.com/mcoot/wordsearch-go/internal/api/middleware"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/events"
	"github.com/mcoot/wordsearch-go/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Random          random.Random // request IDs
	MatchController match.ControllerInterface
	Events          *events.HubManager // event streams are disabled when nil
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	rnd := cfg.Random
	if rnd == nil {
		rnd = random.New()
	}

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	playerHandler := handler.NewPlayerHandler(cfg.MatchController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger, rnd)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Match routes
	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.List).Methods(http.MethodGet)
	matches.HandleFunc("/{code}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{code}", matchHandler.Delete).Methods(http.MethodDelete)
	matches.HandleFunc("/{code}/start", matchHandler.Start).Methods(http.MethodPost)
	matches.HandleFunc("/{code}/leaderboard", matchHandler.Leaderboard).Methods(http.MethodGet)
	if cfg.Events != nil {
		eventsHandler := handler.NewEventsHandler(cfg.MatchController, cfg.Events)
		matches.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	// Player routes
	matches.HandleFunc("/{code}/players", playerHandler.Join).Methods(http.MethodPost)
	players := matches.PathPrefix("/{code}/players/{name}").Subrouter()
	players.HandleFunc("/session", playerHandler.Session).Methods(http.MethodGet)
	players.HandleFunc("/gesture/begin", playerHandler.Begin).Methods(http.MethodPost)
	players.HandleFunc("/gesture/extend", playerHandler.Extend).Methods(http.MethodPost)
	players.HandleFunc("/gesture/commit", playerHandler.Commit).Methods(http.MethodPost)
	players.HandleFunc("/gesture/cancel", playerHandler.Cancel).Methods(http.MethodPost)
	players.HandleFunc("/select", playerHandler.Select).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
