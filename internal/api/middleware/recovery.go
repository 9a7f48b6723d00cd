package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearch-go/internal/api/apierr"
	"github.com/mcoot/wordsearch-go/internal/middleware"
)

// Recovery answers a panicking API request with INTERNAL_ERROR. The body
// names the request ID so a client report can be found in the server log.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError(middleware.RequestID(r.Context())))
	})
}
