package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/metrics"
)

// RequestLogger logs one line per request and records its latency against
// the matched chi route pattern.
func RequestLogger(log zerolog.Logger, rec *metrics.Recorder) func(http.Handler) http.Handler {
	log = logger.WithComponent(log, "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			rec.ObserveRequest(route, r.Method, status, elapsed)

			evt := log.Info()
			if status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			evt.Str(logger.FieldRequestID, chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Int64(logger.FieldDuration, elapsed.Milliseconds()).
				Msg("request")
		})
	}
}
