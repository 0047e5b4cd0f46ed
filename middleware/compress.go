package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CompressHandler gzip-compresses responses when the client accepts it.
// The map and scatter payloads are large enough for this to matter.
func CompressHandler(next http.Handler) http.Handler {
	return handlers.CompressHandler(next)
}
