package events

import (
	"encoding/json"
	"time"

	"github.com/mcoot/wordsearch-go/internal/model"
)

// Event names sent on a match stream
const (
	EventConnected      = "connected"
	EventPlayerJoined   = "player-joined"
	EventMatchStarted   = "match-started"
	EventWordFound      = "word-found"
	EventPlayerWon      = "player-won"
	EventPlayerFinished = "player-finished"
	EventMatchDeleted   = "match-deleted"
)

// Event is one named message with a JSON payload
type Event struct {
	Name string
	Data any
}

// PlayerJoined is the payload of EventPlayerJoined
type PlayerJoined struct {
	Player string `json:"player"`
}

// MatchStarted is the payload of EventMatchStarted
type MatchStarted struct {
	StartTime time.Time `json:"start_time"`
	TimeLimit int       `json:"time_limit"`
}

// WordFound is the payload of EventWordFound
type WordFound struct {
	Player string `json:"player"`
	Word   string `json:"word"`
	Found  int    `json:"found"`
	Total  int    `json:"total"`
}

// PlayerWon is the payload of EventPlayerWon, sent the moment the last
// word is found
type PlayerWon struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// PlayerFinished is the payload of EventPlayerFinished
type PlayerFinished struct {
	Player  string        `json:"player"`
	Outcome model.Outcome `json:"outcome"`
	Score   int           `json:"score"`
}

// MatchDeleted is the payload of EventMatchDeleted
type MatchDeleted struct {
	Code model.MatchCode `json:"code"`
}

// Encode renders the event in the text/event-stream wire format
func (e Event) Encode() ([]byte, error) {
	data := []byte("{}")
	if e.Data != nil {
		var err error
		data, err = json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
	}
	return formatSSEMessage(e.Name, string(data)), nil
}

// formatSSEMessage formats an SSE message with event name and data.
// Each line of data gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	for _, line := range splitLines(data) {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
