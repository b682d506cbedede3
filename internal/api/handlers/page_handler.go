package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/models"
	"github.com/markdave123-py/s3-previewer/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	homeTmpl    = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/home.html"))
	previewTmpl = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/preview.html"))
)

const lastModifiedLayout = "Jan 2, 2006, 3:04 PM"

// SiteInfo is the static text shown around every page.
type SiteInfo struct {
	BannerText string
	BannerLogo string
	Bucket     string
	Folder     string
}

type PageHandler struct {
	previews Previewer
	mode     models.URLMode
	marker   string
	site     SiteInfo
	log      zerolog.Logger
}

// NewPageHandler builds the page handlers. marker is the legacy key prefix
// the preview route strips; Submit adds it back so typed names survive.
func NewPageHandler(previews Previewer, mode models.URLMode, marker string, site SiteInfo, log zerolog.Logger) *PageHandler {
	return &PageHandler{previews: previews, mode: mode, marker: marker, site: site, log: logger.WithComponent(log, "pages")}
}

type homePage struct {
	Site  SiteInfo
	Error string
}

type fileDetails struct {
	ContentType  string
	Size         string
	LastModified string
	ETag         string
}

type previewPage struct {
	Site       SiteInfo
	FileName   string
	ExtLabel   string
	LabelColor string
	Strategy   string
	URL        string
	Details    *fileDetails
}

// Home renders the file name form.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, homeTmpl, http.StatusOK, homePage{Site: h.site})
}

// Submit takes the form post and redirects to the preview page for the name.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, homeTmpl, http.StatusBadRequest, homePage{Site: h.site, Error: "Invalid form submission"})
		return
	}
	name := strings.TrimSpace(r.PostFormValue("fileName"))
	if name == "" {
		h.render(w, r, homeTmpl, http.StatusBadRequest, homePage{Site: h.site, Error: "File name is required"})
		return
	}
	http.Redirect(w, r, "/preview/"+url.PathEscape(h.marker+name), http.StatusSeeOther)
}

// Preview renders the preview page. A failed lookup still renders the page,
// in its degraded "File URL not available" state.
func (h *PageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	raw, ok := keyParam(r)
	if !ok || strings.TrimSpace(raw) == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	p, err := h.previews.Preview(r.Context(), raw, h.mode)
	if err != nil {
		if !errors.Is(err, services.ErrPreviewUnavailable) {
			h.log.Error().Err(err).Str(logger.FieldRequestID, middleware.GetReqID(r.Context())).Msg("unexpected preview error")
		}
		p = h.previews.Describe(raw)
	}

	h.render(w, r, previewTmpl, http.StatusOK, h.pageData(p))
}

func (h *PageHandler) pageData(p *models.Preview) previewPage {
	page := previewPage{
		Site:       h.site,
		FileName:   p.Name,
		ExtLabel:   strings.ToUpper(p.Extension),
		LabelColor: labelColor(p.Extension),
		Strategy:   string(p.Strategy),
	}
	if !p.Available() {
		return page
	}

	page.URL = p.Access.URL
	page.Details = &fileDetails{
		ContentType: p.Metadata.ContentType,
		Size:        humanize.IBytes(uint64(p.Metadata.ContentLength)),
		ETag:        p.Metadata.ETag,
	}
	if p.Metadata.LastModified != nil {
		page.Details.LastModified = p.Metadata.LastModified.UTC().Format(lastModifiedLayout)
	}
	return page
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, t *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error().Err(err).Str(logger.FieldRequestID, middleware.GetReqID(r.Context())).Msg("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var labelColors = map[string]string{
	"pdf":  "#d93831",
	"docx": "#2c5898",
	"odt":  "#2c5898",
	"rtf":  "#2c5898",
	"txt":  "#5a5a5a",
	"md":   "#5a5a5a",
	"zip":  "#c8a21a",
	"epub": "#8bb23f",
	"jpg":  "#2e9e6b",
	"jpeg": "#2e9e6b",
	"png":  "#2e9e6b",
	"gif":  "#2e9e6b",
}

func labelColor(ext string) string {
	if c, ok := labelColors[ext]; ok {
		return c
	}
	return "#777"
}
