package preview

import (
	"mime"
	"strings"

	"github.com/markdave123-py/s3-previewer/internal/models"
)

const DefaultContentType = "application/octet-stream"

var extensionTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"odt":  "application/vnd.oasis.opendocument.text",
	"rtf":  "application/rtf",
	"txt":  "text/plain",
	"md":   "text/markdown",
	"zip":  "application/zip",
	"epub": "application/epub+zip",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// ContentTypeForExtension looks ext up in the fixed extension table.
func ContentTypeForExtension(ext string) string {
	if ct, ok := extensionTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return DefaultContentType
}

// EffectiveContentType prefers an explicit content type over the extension table.
func EffectiveContentType(ext, contentType string) string {
	if strings.TrimSpace(contentType) != "" {
		return contentType
	}
	return ContentTypeForExtension(ext)
}

// Route picks the render strategy for an object. It never fails: anything not
// recognised is rendered as a generic download card.
func Route(ext, contentType string) models.RenderStrategy {
	ct := baseType(EffectiveContentType(ext, contentType))

	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.StrategyImage
	case ct == "application/pdf":
		return models.StrategyPdf
	case ct == "text/plain", ct == "text/markdown":
		return models.StrategyText
	default:
		return models.StrategyGeneric
	}
}

// baseType drops parameters like "; charset=utf-8" and lower-cases the result.
func baseType(ct string) string {
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
