package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/s3-previewer/internal/metrics"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(RequestLogger(zerolog.New(&buf), rec))
	r.Get("/api/preview/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/preview/a.pdf", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["message"])
	assert.Equal(t, "/api/preview/{key}", line["route"])
	assert.Equal(t, "/api/preview/a.pdf", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, "http", line["component"])

	count, err := testutil.GatherAndCount(reg, "s3previewer_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
