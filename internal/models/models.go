package models

import (
	"fmt"
	"time"
)

// ObjectKey identifies a stored object inside the bucket, folder included.
type ObjectKey string

func (k ObjectKey) String() string { return string(k) }

// ObjectMetadata is what a HEAD request tells us about an object.
type ObjectMetadata struct {
	ContentType   string     `json:"contentType"`
	ContentLength int64      `json:"contentLength"`
	LastModified  *time.Time `json:"lastModified,omitempty"`
	ETag          string     `json:"etag,omitempty"`
}

// RenderStrategy is how the presentation layer shows an object.
type RenderStrategy string

const (
	StrategyImage   RenderStrategy = "image"
	StrategyPdf     RenderStrategy = "pdf"
	StrategyText    RenderStrategy = "text"
	StrategyGeneric RenderStrategy = "generic"
)

// URLMode selects between a presigned URL and the permanent object path.
type URLMode string

const (
	URLModeSigned URLMode = "signed"
	URLModeDirect URLMode = "direct"
)

// ParseURLMode accepts "signed" or "direct".
func ParseURLMode(s string) (URLMode, error) {
	switch URLMode(s) {
	case URLModeSigned, URLModeDirect:
		return URLMode(s), nil
	}
	return "", fmt.Errorf("unknown url mode %q", s)
}

// SignedAccessURL is a URL granting read access to one object. ExpiresAt is
// zero for direct URLs.
type SignedAccessURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// Preview is everything the presentation layer needs for one object.
// Metadata and Access are both nil when the object could not be previewed.
type Preview struct {
	Key       ObjectKey
	Name      string
	Extension string
	Strategy  RenderStrategy
	Mode      URLMode
	Metadata  *ObjectMetadata
	Access    *SignedAccessURL
}

// Available reports whether both metadata and an access URL were obtained.
func (p *Preview) Available() bool {
	return p != nil && p.Metadata != nil && p.Access != nil && p.Access.URL != ""
}
