// ocrproof is a proofreading tool for hOCR documents.
//
// It shows each page of an hOCR document as a layout view, with every
// recognized word drawn at its position on the scan, next to the editable
// document itself. The serve command hosts the proofreader over HTTP; the
// other commands run it once over a document.
//
// Usage:
//
//	ocrproof serve --document book.hocr
//	ocrproof render --page 2 --png -o page2.png book.hocr
//	ocrproof proof -o book.pdf https://example.com/scans/book.hocr
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/internal/commands"
	"github.com/gardar/ocrproof/internal/config"
	"github.com/gardar/ocrproof/internal/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var logCloser func()
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "ocrproof",
		Usage:     "Proofread hOCR documents against their scans",
		UsageText: "ocrproof [global options] command [command options]",
		Version:   build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("OCRPROOF_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("OCRPROOF_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to YAML config file",
				Sources:     cli.EnvVars("OCRPROOF_CONFIG"),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewServeCmd(flags).Register(app)
	app = commands.NewRenderCmd(flags).Register(app)
	app = commands.NewExportCmd(flags).Register(app)
	app = commands.NewPagesCmd(flags).Register(app)
	app = commands.NewProofCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
