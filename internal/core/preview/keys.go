package preview

import (
	"strings"

	"github.com/markdave123-py/s3-previewer/internal/models"
)

// KeyResolver turns a user supplied file name into a storage key.
type KeyResolver struct {
	folder       string
	legacyPrefix string
}

func NewKeyResolver(folder, legacyPrefix string) *KeyResolver {
	return &KeyResolver{
		folder:       strings.Trim(folder, "/"),
		legacyPrefix: legacyPrefix,
	}
}

// Resolve strips the legacy marker once and joins the name with the base
// folder. raw must already be URL-decoded. The join does not clean the path:
// "../" segments pass through untouched.
func (r *KeyResolver) Resolve(raw string) models.ObjectKey {
	name := r.StripPrefix(raw)
	if r.folder == "" {
		return models.ObjectKey(name)
	}
	return models.ObjectKey(r.folder + "/" + name)
}

// StripPrefix removes the legacy marker from the front of raw, if present.
func (r *KeyResolver) StripPrefix(raw string) string {
	if r.legacyPrefix == "" {
		return raw
	}
	return strings.TrimPrefix(raw, r.legacyPrefix)
}

// FileName returns the last path segment of key.
func FileName(key models.ObjectKey) string {
	s := string(key)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Extension returns the lower-cased text after the last dot of name, or ""
// when name has no dot.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
