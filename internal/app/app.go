// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/s3-previewer/internal/config"
	objectclient "github.com/markdave123-py/s3-previewer/internal/core/object-client"
	"github.com/markdave123-py/s3-previewer/internal/core/preview"
	"github.com/markdave123-py/s3-previewer/internal/metrics"
	"github.com/markdave123-py/s3-previewer/internal/services"
)

type App struct {
	ObjectClient objectclient.ObjectClient
	Previews     *services.PreviewService
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	objClient, err := objectclient.NewS3Client(appCtx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the object client, %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize metrics, %w", err)
	}

	previews := services.NewPreviewService(
		objClient,
		preview.NewKeyResolver(cfg.BaseFolder, cfg.LegacyPrefix),
		services.PreviewOptions{
			PresignTTL: cfg.PresignTTL,
			CacheTTL:   cfg.MetadataCacheTTL,
			CacheSize:  cfg.MetadataCacheSize,
		},
		rec,
		log,
	)
	if cfg.MetadataCacheTTL > 0 {
		log.Info().Dur("ttl", cfg.MetadataCacheTTL).Int("size", cfg.MetadataCacheSize).Msg("metadata cache enabled")
	}

	server := NewServer(cfg, previews, rec, reg, log)

	return &App{ObjectClient: objClient, Previews: previews, Server: server}, nil
}
