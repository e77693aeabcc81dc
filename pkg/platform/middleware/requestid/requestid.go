// Package requestid assigns every request a correlation ID.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"taxguard/pkg/requestcontext"
)

// Header carries the correlation ID in both directions.
const Header = "X-Request-ID"

const maxLength = 128

// Middleware reuses a caller-supplied X-Request-ID when it is reasonable,
// otherwise generates a UUID. The ID is stored in the context and echoed back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(Header))
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
