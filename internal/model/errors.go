package model

import "errors"

// Common errors used across the application
var (
	// Grid and gesture errors
	ErrInvalidGridSize = errors.New("invalid grid size")
	ErrInvalidPosition = errors.New("invalid grid position")

	// Session errors
	ErrSessionFinished     = errors.New("session is already finished")
	ErrSessionNotFinished  = errors.New("session is not finished")
	ErrClockNotStarted     = errors.New("start time has not been supplied")
	ErrClockAlreadyStarted = errors.New("start time has already been supplied")

	// Match errors
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchAlreadyStarted = errors.New("match has already started")
	ErrNoWords             = errors.New("at least one word is required")
	ErrWordTooLong         = errors.New("word is longer than the grid")
	ErrInvalidTimeLimit    = errors.New("invalid time limit")

	// Player errors
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidPlayerName = errors.New("invalid player name")
)
