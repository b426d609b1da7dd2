package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/pdfocr"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/source"
)

type ProofCmd struct {
	flags *Flags

	// flags
	output    string
	startPage int
	debug     bool
	noImages  bool
}

// NewProofCmd creates a new proof command
func NewProofCmd(flags *Flags) *ProofCmd {
	return &ProofCmd{flags: flags}
}

// Register adds the proof command to the application
func (cmd *ProofCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "proof",
		Usage:     "Build a PDF proof sheet",
		UsageText: "ocrproof proof -o file.pdf [--start-page n] [--debug] [--no-images] <document>",
		Description: `Draws every page of an hOCR document into a PDF. Pages whose image can be
loaded show the scan with the words as an invisible text layer; the other
pages show the words themselves. --debug outlines each word box in red.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output PDF path",
				Required:    true,
				Destination: &cmd.output,
			},
			&cli.IntFlag{
				Name:        "start-page",
				Usage:       "first page to include, starting at 1",
				Value:       1,
				Destination: &cmd.startPage,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "draw word boxes and visible text",
				Destination: &cmd.debug,
			},
			&cli.BoolFlag{
				Name:        "no-images",
				Usage:       "do not load page images",
				Destination: &cmd.noImages,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ProofCmd) run(ctx context.Context, c *cli.Command) error {
	location := c.Args().First()
	if location == "" {
		return fmt.Errorf("document path or URL is required")
	}

	widget, err := openWidget(ctx, cmd.flags.Config, location)
	if err != nil {
		return err
	}
	pages, err := cmd.collect(ctx, widget)
	if err != nil {
		return err
	}

	config := cmd.flags.Config.ProofSheet()
	config.StartPage = cmd.startPage
	config.Debug = config.Debug || cmd.debug
	config.Logger = log.With().Str("component", "pdfocr").Logger()

	pdf, err := pdfocr.ProofSheet(pages, config)
	if err != nil {
		return fmt.Errorf("build proof sheet: %w", err)
	}
	return writeOutput(cmd.output, pdf)
}

// collect renders each page in turn and captures it with its image
func (cmd *ProofCmd) collect(ctx context.Context, widget *proofreader.Proofreader) ([]pdfocr.Page, error) {
	var pages []pdfocr.Page

	if err := widget.Goto(proofreader.TargetFirst); err != nil {
		return nil, err
	}
	for widget.Current() != nil {
		id, _ := hocr.Attr(widget.Current(), "id")

		var image []byte
		if href := widget.Overlay().ImageHref(); href != "" && !cmd.noImages {
			data, err := source.Get(ctx, href)
			if err != nil {
				log.Warn().Err(err).Str("page", id).Msg("page image unavailable, drawing words only")
			} else {
				image = data
			}
		}

		if page, ok := pdfocr.PageFromOverlay(widget.Overlay(), image); ok {
			pages = append(pages, page)
		} else {
			log.Warn().Str("page", id).Msg("page has no bounding box, skipped")
		}

		if err := widget.Goto(proofreader.TargetNext); err != nil {
			return nil, err
		}
	}
	return pages, nil
}
