package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch-go/internal/api/apierr"
	"github.com/mcoot/wordsearch-go/internal/api/request"
	"github.com/mcoot/wordsearch-go/internal/api/response"
	"github.com/mcoot/wordsearch-go/internal/model"
	"github.com/mcoot/wordsearch-go/internal/services/match"
	"github.com/mcoot/wordsearch-go/internal/services/session"
)

// PlayerHandler handles joining a match and playing a session
type PlayerHandler struct {
	matchController match.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(matchController match.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		matchController: matchController,
	}
}

// session looks up the live session named in the route
func (h *PlayerHandler) session(r *http.Request) (*session.Session, error) {
	vars := mux.Vars(r)
	return h.matchController.Session(model.MatchCode(vars["code"]), vars["name"])
}

func decodePosition(w http.ResponseWriter, r *http.Request) (model.Position, error) {
	var req request.Position
	if err := decodeBody(w, r, &req); err != nil {
		return model.Position{}, err
	}
	return model.Position{X: req.X, Y: req.Y}, nil
}

// Join handles POST /api/v1/matches/{code}/players
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.MatchCode(mux.Vars(r)["code"])

	var req request.JoinRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	sess, err := h.matchController.JoinMatch(r.Context(), code, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess.Snapshot()))
}

// Session handles GET /api/v1/matches/{code}/players/{name}/session
func (h *PlayerHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess.Snapshot()))
}

// Begin handles POST .../gesture/begin
func (h *PlayerHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	pos, err := decodePosition(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := sess.Begin(pos); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess.Snapshot()))
}

// Extend handles POST .../gesture/extend. A crooked extension is not an
// error; it is reported with accepted=false and the path is unchanged.
func (h *PlayerHandler) Extend(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	pos, err := decodePosition(w, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	accepted := sess.Extend(pos)

	response.JSON(w, http.StatusOK, response.Extend{
		Accepted: accepted,
		Session:  response.SessionFromModel(sess.Snapshot()),
	})
}

// Commit handles POST .../gesture/commit
func (h *PlayerHandler) Commit(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := sess.Commit()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CommitFromResult(result, sess.Snapshot()))
}

// Cancel handles POST .../gesture/cancel
func (h *PlayerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	sess.CancelGesture()

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess.Snapshot()))
}

// Select handles POST .../select: a whole drag in one call
func (h *PlayerHandler) Select(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.SelectRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}
	from := model.Position{X: req.From.X, Y: req.From.Y}
	to := model.Position{X: req.To.X, Y: req.To.Y}

	if err := sess.Begin(from); err != nil {
		WriteError(w, err)
		return
	}
	if from != to && !sess.Extend(to) {
		sess.CancelGesture()
		WriteError(w, apierr.NewInvalidSelectionError())
		return
	}

	result, err := sess.Commit()
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CommitFromResult(result, sess.Snapshot()))
}
