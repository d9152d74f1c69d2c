package httpapi

import (
	"net/http"

	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/app/session"
)

// NewGateMiddleware rejects requests while the console is logged out.
//
// On success, it stores the current operator in request context.
func NewGateMiddleware(g *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op, ok := g.Operator()
			if !ok {
				writeError(w, r, http.StatusUnauthorized, members.CodeLoginRequired, "log in to use the console", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
		})
	}
}
