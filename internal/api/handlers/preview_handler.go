package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

// Previewer is the part of the preview service the handlers use.
type Previewer interface {
	Preview(ctx context.Context, raw string, mode models.URLMode) (*models.Preview, error)
	Describe(raw string) *models.Preview
}

type PreviewHandler struct {
	previews Previewer
	log      zerolog.Logger
}

func NewPreviewHandler(previews Previewer, log zerolog.Logger) *PreviewHandler {
	return &PreviewHandler{previews: previews, log: logger.WithComponent(log, "preview-api")}
}

type previewMetadata struct {
	ContentType   string     `json:"contentType"`
	ContentLength int64      `json:"contentLength"`
	LastModified  *time.Time `json:"lastModified,omitempty"`
	ETag          string     `json:"etag,omitempty"`
	Name          string     `json:"name"`
}

type previewResponse struct {
	URL       string          `json:"url"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
	Strategy  string          `json:"strategy"`
	Metadata  previewMetadata `json:"metadata"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetPreview returns a short-lived signed URL and the object's metadata.
func (h *PreviewHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	raw, ok := keyParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File key is invalid"})
		return
	}
	if strings.TrimSpace(raw) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File key is required"})
		return
	}

	p, err := h.previews.Preview(r.Context(), raw, models.URLModeSigned)
	if err != nil {
		h.log.Error().Err(err).Str(logger.FieldRequestID, middleware.GetReqID(r.Context())).Msg("error generating preview")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to generate preview"})
		return
	}

	resp := previewResponse{
		URL:      p.Access.URL,
		Strategy: string(p.Strategy),
		Metadata: previewMetadata{
			ContentType:   p.Metadata.ContentType,
			ContentLength: p.Metadata.ContentLength,
			LastModified:  p.Metadata.LastModified,
			ETag:          p.Metadata.ETag,
			Name:          p.Name,
		},
	}
	if !p.Access.ExpiresAt.IsZero() {
		resp.ExpiresAt = &p.Access.ExpiresAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// MissingKey answers routes where the key segment is absent altogether.
func (h *PreviewHandler) MissingKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "File key is required"})
}

// keyParam returns the decoded {key} path parameter. chi matches on RawPath
// when it is set, so only then is the parameter still percent-encoded.
func keyParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "key")
	if r.URL.RawPath == "" {
		return raw, true
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return decoded, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
