package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sahakari-society/members-console/internal/platform/logging"
)

// NewRequestLogger logs one line per completed request at a level derived
// from the response status.
func NewRequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.LogAttrs(r.Context(), logging.LevelForStatus(status), "http request",
				slog.String(logging.FieldMethod, r.Method),
				slog.String(logging.FieldPath, r.URL.Path),
				slog.Int(logging.FieldStatusCode, status),
				slog.Int64(logging.FieldDuration, time.Since(start).Milliseconds()),
				slog.String(logging.FieldRequestID, middleware.GetReqID(r.Context())),
				slog.String(logging.FieldClientIP, r.RemoteAddr),
			)
		})
	}
}
