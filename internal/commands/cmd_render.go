package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/pkg/layout"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/snapshot"
)

type RenderCmd struct {
	flags *Flags

	// flags
	page     int
	zoom     string
	output   string
	backdrop bool
	png      bool
}

// NewRenderCmd creates a new render command
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render the layout view of one page",
		UsageText: "ocrproof render [--page n] [--zoom mode] [--words] [--png] [-o file] <document>",
		Description: `Loads an hOCR document and writes the layout view of a page as SVG.

With --words the recognized text replaces the page image. With --png the
view is rendered by a headless Chrome and written as PNG.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "page",
				Usage:       "page number, starting at 1",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.StringFlag{
				Name:        "zoom",
				Usage:       "page-full, page-width or original (defaults to the config)",
				Destination: &cmd.zoom,
			},
			&cli.BoolFlag{
				Name:        "words",
				Usage:       "show the word text instead of the page image",
				Destination: &cmd.backdrop,
			},
			&cli.BoolFlag{
				Name:        "png",
				Usage:       "write a PNG snapshot instead of SVG",
				Destination: &cmd.png,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output file (defaults to stdout)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	location := c.Args().First()
	if location == "" {
		return fmt.Errorf("document path or URL is required")
	}

	widget, err := openWidget(ctx, cmd.flags.Config, location)
	if err != nil {
		return err
	}
	if err := cmd.present(widget); err != nil {
		return err
	}

	svg, err := widget.Overlay().SVG()
	if err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	if !cmd.png {
		return writeOutput(cmd.output, []byte(svg))
	}

	var buf bytes.Buffer
	opts := snapshot.Options{
		Timeout:   cmd.flags.Config.SnapshotTimeout,
		NoSandbox: cmd.flags.Config.NoSandbox,
		Logger:    log.With().Str("component", "snapshot").Logger(),
	}
	if err := snapshot.PNG(ctx, svg, &buf, opts); err != nil {
		return err
	}
	return writeOutput(cmd.output, buf.Bytes())
}

func (cmd *RenderCmd) present(widget *proofreader.Proofreader) error {
	if err := selectPage(widget, cmd.page); err != nil {
		return err
	}
	if cmd.zoom != "" {
		zoom, err := layout.ParseZoom(cmd.zoom)
		if err != nil {
			return err
		}
		widget.SetZoom(zoom)
	}
	if cmd.backdrop {
		widget.ToggleBackdrop()
	}
	return nil
}
