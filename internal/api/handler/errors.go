package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/wordsearch-go/internal/api/apierr"
)

// maxBodyBytes caps request bodies; the largest is a match word list
const maxBodyBytes = 64 << 10

// WriteError writes err as a JSON error body with its mapped status
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeBody reads a JSON request body into v. Empty, malformed or
// oversized bodies are reported as INVALID_REQUEST.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	return nil
}
