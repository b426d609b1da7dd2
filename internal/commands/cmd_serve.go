package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/internal/server"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/source"
)

type ServeCmd struct {
	flags *Flags

	// flags
	listen   string
	document string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Host a proofreader over HTTP",
		UsageText: "ocrproof serve [--listen addr] [--document path-or-url]",
		Description: `Runs one proofreader widget behind a JSON API. Documents are uploaded to
POST /api/document or fetched with POST /api/document/fetch?url=...

The layout view is served as SVG at /api/layout.svg and as PNG at
/api/layout.png.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "listen",
				Usage:       "address to listen on (overrides the config)",
				Destination: &cmd.listen,
			},
			&cli.StringFlag{
				Name:        "document",
				Usage:       "hOCR document to load on start",
				Destination: &cmd.document,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	if cmd.listen != "" {
		cfg.Listen = cmd.listen
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	layoutBounds, editorBounds := cfg.Bounds()
	widget := proofreader.NewWithBounds(cfg.Proofreader(), layoutBounds, editorBounds,
		log.With().Str("component", "proofreader").Logger())

	loop := proofreader.NewLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()

	if cmd.document != "" {
		if err := cmd.preload(ctx, loop, widget); err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.Listen,
		Handler:      server.NewServer(widget, loop, log.Logger, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.SnapshotTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("listen", cfg.Listen).Msg("starting ocrproof")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-loopDone
	return nil
}

func (cmd *ServeCmd) preload(ctx context.Context, loop *proofreader.Loop, widget *proofreader.Proofreader) error {
	data, err := source.Get(ctx, cmd.document)
	if err != nil {
		return err
	}
	base := cmd.flags.Config.BaseURL
	if base == "" {
		base = cmd.document
	}

	var (
		loadErr error
		pages   int
	)
	if err := loop.Do(ctx, func() {
		loadErr = widget.Load(string(data), base)
		pages = len(widget.Pages())
	}); err != nil {
		return err
	}
	if loadErr != nil {
		return fmt.Errorf("load %s: %w", cmd.document, loadErr)
	}
	log.Info().Str("document", cmd.document).Int("pages", pages).Msg("document loaded")
	return nil
}
