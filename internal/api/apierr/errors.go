package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/wordsearch-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeInvalidSelection    = "INVALID_SELECTION"
	CodeInvalidGridSize     = "INVALID_GRID_SIZE"
	CodeInvalidTimeLimit    = "INVALID_TIME_LIMIT"
	CodeInvalidPlayerName   = "INVALID_PLAYER_NAME"
	CodeNoWords             = "NO_WORDS"
	CodeWordTooLong         = "WORD_TOO_LONG"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeMatchAlreadyStarted = "MATCH_ALREADY_STARTED"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSessionFinished     = "SESSION_FINISHED"
	CodeSessionNotFinished  = "SESSION_NOT_FINISHED"
	CodeClockNotStarted     = "CLOCK_NOT_STARTED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Validation errors keep
// their wrapped detail in the message.
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Match errors
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrMatchAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeMatchAlreadyStarted, "Match has already started"}}
	case errors.Is(err, model.ErrNoWords):
		return &httpError{http.StatusBadRequest, APIError{CodeNoWords, "At least one word is required"}}
	case errors.Is(err, model.ErrWordTooLong):
		return &httpError{http.StatusBadRequest, APIError{CodeWordTooLong, err.Error()}}
	case errors.Is(err, model.ErrInvalidGridSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGridSize, err.Error()}}
	case errors.Is(err, model.ErrInvalidTimeLimit):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTimeLimit, err.Error()}}

	// Player errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player has not joined this match"}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerName, "Player name must be 1-32 characters"}}

	// Session errors
	case errors.Is(err, model.ErrSessionFinished):
		return &httpError{http.StatusConflict, APIError{CodeSessionFinished, "Round is already over"}}
	case errors.Is(err, model.ErrSessionNotFinished):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotFinished, "Round is still in progress"}}
	case errors.Is(err, model.ErrClockNotStarted), errors.Is(err, model.ErrClockAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeClockNotStarted, "Match has not started"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInvalidSelectionError reports a drag that is not a straight line
func NewInvalidSelectionError() error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidSelection, "Selection must be a straight horizontal, vertical or diagonal line"}}
}

// NewInternalError creates an internal server error, tagged with the
// request ID when one is known
func NewInternalError(requestID string) error {
	msg := "Internal server error"
	if requestID != "" {
		msg = fmt.Sprintf("%s (request %s)", msg, requestID)
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, msg}}
}
