package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/markdave123-py/s3-previewer/internal/api/handlers"
	"github.com/markdave123-py/s3-previewer/internal/app"
	"github.com/markdave123-py/s3-previewer/internal/config"
	"github.com/markdave123-py/s3-previewer/internal/logger"
	"github.com/markdave123-py/s3-previewer/internal/models"
)

// appLoader builds the application from the environment.
type appLoader func(ctx context.Context) (*app.App, zerolog.Logger, error)

func loadApp(ctx context.Context) (*app.App, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	application, err := app.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return nil, log, err
	}
	return application, log, nil
}

func newRootCommand(load appLoader) *cobra.Command {
	serve := newServeCommand(load)

	root := &cobra.Command{
		Use:          "s3-previewer",
		Short:        "Preview S3 objects before downloading them.",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve)
	root.AddCommand(newInspectCommand(func(ctx context.Context) (handlers.Previewer, error) {
		application, _, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return application.Previews, nil
	}))
	return root
}

func newServeCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			application, log, err := load(ctx)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() { errCh <- application.Server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return application.Server.Shutdown(shutdownCtx)
		},
	}
}

func newInspectCommand(load func(ctx context.Context) (handlers.Previewer, error)) *cobra.Command {
	var direct bool

	cmd := &cobra.Command{
		Use:   "inspect <file-name>",
		Short: "Resolve one file name and print its preview details.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			previews, err := load(cmd.Context())
			if err != nil {
				return err
			}

			mode := models.URLModeSigned
			if direct {
				mode = models.URLModeDirect
			}

			p, err := previews.Preview(cmd.Context(), args[0], mode)
			if err != nil {
				d := previews.Describe(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "key:       %s\nstrategy:  %s\nstatus:    unavailable\n", d.Key, d.Strategy)
				return errors.New("metadata unavailable")
			}
			printPreview(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&direct, "direct", false, "print the unsigned object URL instead of a presigned one")
	return cmd
}

func printPreview(w io.Writer, p *models.Preview) {
	fmt.Fprintf(w, "key:       %s\n", p.Key)
	fmt.Fprintf(w, "name:      %s\n", p.Name)
	fmt.Fprintf(w, "strategy:  %s\n", p.Strategy)
	fmt.Fprintf(w, "type:      %s\n", p.Metadata.ContentType)
	fmt.Fprintf(w, "size:      %s\n", humanize.IBytes(uint64(p.Metadata.ContentLength)))
	if p.Metadata.LastModified != nil {
		fmt.Fprintf(w, "modified:  %s\n", p.Metadata.LastModified.UTC().Format(time.RFC3339))
	}
	if p.Metadata.ETag != "" {
		fmt.Fprintf(w, "etag:      %s\n", p.Metadata.ETag)
	}
	fmt.Fprintf(w, "url:       %s\n", p.Access.URL)
	if !p.Access.ExpiresAt.IsZero() {
		fmt.Fprintf(w, "expires:   %s\n", p.Access.ExpiresAt.UTC().Format(time.RFC3339))
	}
}
