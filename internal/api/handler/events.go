package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch-go/internal/events"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/match"
)

// EventsHandler streams match events over server-sent events
type EventsHandler struct {
	matchController match.ControllerInterface
	hubs            *events.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(matchController match.ControllerInterface, hubs *events.HubManager) *EventsHandler {
	return &EventsHandler{
		matchController: matchController,
		hubs:            hubs,
	}
}

// Stream handles GET /api/v1/matches/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])

	if _, err := h.matchController.GetMatch(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	events.Serve(w, r, h.hubs.GetOrCreateHub(code), r.URL.Query().Get("player"))
}
