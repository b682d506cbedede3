package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	objectclient "github.com/markdave123-py/s3-previewer/internal/core/object-client"
	"github.com/markdave123-py/s3-previewer/internal/core/preview"
	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/metrics"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

// ErrPreviewUnavailable covers every way a preview can fail: missing object,
// denied access, network trouble or signing failure.
var ErrPreviewUnavailable = errors.New("preview unavailable")

var errEmptyResult = errors.New("object client returned no result")

type PreviewOptions struct {
	PresignTTL time.Duration
	// CacheTTL enables the metadata cache when > 0. Access URLs are never cached.
	CacheTTL  time.Duration
	CacheSize int
}

type PreviewService struct {
	objects    objectclient.ObjectClient
	keys       *preview.KeyResolver
	presignTTL time.Duration
	cache      *expirable.LRU[models.ObjectKey, models.ObjectMetadata]
	metrics    *metrics.Recorder
	log        zerolog.Logger
}

func NewPreviewService(objects objectclient.ObjectClient, keys *preview.KeyResolver, opts PreviewOptions, rec *metrics.Recorder, log zerolog.Logger) *PreviewService {
	s := &PreviewService{
		objects:    objects,
		keys:       keys,
		presignTTL: opts.PresignTTL,
		metrics:    rec,
		log:        logger.WithComponent(log, "preview"),
	}
	if s.presignTTL <= 0 {
		s.presignTTL = 60 * time.Second
	}
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 256
		}
		s.cache = expirable.NewLRU[models.ObjectKey, models.ObjectMetadata](size, nil, opts.CacheTTL)
	}
	return s
}

// Describe resolves raw into a preview whose strategy comes from the file
// extension alone. Metadata and Access are left nil.
func (s *PreviewService) Describe(raw string) *models.Preview {
	key := s.keys.Resolve(raw)
	name := preview.FileName(key)
	ext := preview.Extension(name)
	return &models.Preview{
		Key:       key,
		Name:      name,
		Extension: ext,
		Strategy:  preview.Route(ext, ""),
	}
}

// Preview fetches metadata and issues an access URL for raw. Both reads run
// concurrently; if either fails the result is ErrPreviewUnavailable and no
// partial preview is returned.
func (s *PreviewService) Preview(ctx context.Context, raw string, mode models.URLMode) (*models.Preview, error) {
	if mode == "" {
		mode = models.URLModeSigned
	}
	p := s.Describe(raw)
	p.Mode = mode

	var (
		meta   *models.ObjectMetadata
		access *models.SignedAccessURL
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.metadata(gctx, p.Key)
		meta = m
		return err
	})
	g.Go(func() error {
		a, err := s.issue(gctx, p.Key, mode)
		access = a
		return err
	})

	err := g.Wait()
	if err == nil && (meta == nil || access == nil) {
		err = errEmptyResult
	}
	if err != nil {
		s.metrics.RecordPreview(string(mode), "unavailable")
		s.log.Warn().Err(err).Str(logger.FieldKey, p.Key.String()).Str(logger.FieldMode, string(mode)).Msg("preview unavailable")
		return nil, fmt.Errorf("%w: %w", ErrPreviewUnavailable, err)
	}

	p.Metadata = meta
	p.Access = access
	p.Strategy = preview.Route(p.Extension, meta.ContentType)

	s.metrics.RecordPreview(string(mode), "ok")
	s.metrics.RecordStrategy(string(p.Strategy))
	s.log.Debug().Str(logger.FieldKey, p.Key.String()).Str(logger.FieldStrategy, string(p.Strategy)).Str(logger.FieldMode, string(mode)).Msg("preview resolved")
	return p, nil
}

func (s *PreviewService) metadata(ctx context.Context, key models.ObjectKey) (*models.ObjectMetadata, error) {
	if s.cache != nil {
		if m, ok := s.cache.Get(key); ok {
			s.metrics.RecordCacheLookup(true)
			return &m, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	m, err := s.objects.HeadObject(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && m != nil {
		s.cache.Add(key, *m)
	}
	return m, nil
}

func (s *PreviewService) issue(ctx context.Context, key models.ObjectKey, mode models.URLMode) (*models.SignedAccessURL, error) {
	switch mode {
	case models.URLModeDirect:
		return &models.SignedAccessURL{URL: s.objects.ObjectURL(key)}, nil
	case models.URLModeSigned:
		return s.objects.PresignGetObject(ctx, key, s.presignTTL)
	default:
		return nil, fmt.Errorf("unknown url mode %q", mode)
	}
}
