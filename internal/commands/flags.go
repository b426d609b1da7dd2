package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/gardar/ocrproof/internal/config"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/source"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config config.Config
}

// openWidget builds a widget from the configuration and loads the document
// at location into it. Page images resolve against the configured base URL,
// or against location itself.
func openWidget(ctx context.Context, cfg config.Config, location string) (*proofreader.Proofreader, error) {
	data, err := source.Get(ctx, location)
	if err != nil {
		return nil, err
	}

	layoutBounds, editorBounds := cfg.Bounds()
	logger := log.With().Str("component", "proofreader").Logger()
	widget := proofreader.NewWithBounds(cfg.Proofreader(), layoutBounds, editorBounds, logger)

	base := cfg.BaseURL
	if base == "" {
		base = location
	}
	if err := widget.Load(string(data), base); err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}
	return widget, nil
}

// selectPage moves the widget to the 1-based page number n
func selectPage(widget *proofreader.Proofreader, n int) error {
	if n < 1 {
		return fmt.Errorf("page must be at least 1, got %d", n)
	}
	if err := widget.Goto(proofreader.TargetFirst); err != nil {
		return err
	}
	for i := 1; i < n && widget.Current() != nil; i++ {
		if err := widget.Goto(proofreader.TargetNext); err != nil {
			return err
		}
	}
	if widget.Current() == nil {
		return fmt.Errorf("document has no page %d", n)
	}
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-"
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote output")
	return nil
}
