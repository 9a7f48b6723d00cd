package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger, rnd random.Random) func(http.Handler) http.Handler {
	return middleware.Logging(logger, rnd)
}
