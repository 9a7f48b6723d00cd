package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch-go/internal/api/request"
	"github.com/mcoot/wordsearch-go/internal/api/response"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/match"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matchController match.ControllerInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController match.ControllerInterface) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.matchController.CreateMatch(r.Context(), model.MatchConfig{
		Words:     req.Words,
		GridSize:  req.GridSize,
		TimeLimit: req.TimeLimit,
		Seed:      req.Seed,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, "/api/v1/matches/"+string(m.Code), response.MatchFromModel(m))
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.matchController.ListMatches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(codes))
}

// Get handles GET /api/v1/matches/{code}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])

	m, err := h.matchController.GetMatch(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Delete handles DELETE /api/v1/matches/{code}
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])

	if err := h.matchController.DeleteMatch(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/matches/{code}/start
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])

	m, err := h.matchController.StartMatch(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Leaderboard handles GET /api/v1/matches/{code}/leaderboard?player=
func (h *MatchHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])
	player := r.URL.Query().Get("player")

	board, err := h.matchController.Leaderboard(r.Context(), code, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(board))
}
