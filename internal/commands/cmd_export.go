package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/pkg/hocr"
)

type ExportCmd struct {
	flags *Flags

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Round-trip a document through the editor",
		UsageText: "ocrproof export [-o file] <document>",
		Description: `Loads an hOCR document as the editor would and serializes it again,
without any editing state. Useful for normalizing markup before diffing.`,
		Flags: []cli.Flag{
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

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	location := c.Args().First()
	if location == "" {
		return fmt.Errorf("document path or URL is required")
	}

	widget, err := openWidget(ctx, cmd.flags.Config, location)
	if err != nil {
		return err
	}
	out, err := widget.Export()
	if err != nil {
		return err
	}
	return writeOutput(cmd.output, []byte(out))
}

type PagesCmd struct {
	flags *Flags
}

// NewPagesCmd creates a new pages command
func NewPagesCmd(flags *Flags) *PagesCmd {
	return &PagesCmd{flags: flags}
}

// Register adds the pages command to the application
func (cmd *PagesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pages",
		Usage:     "Print the recognized text of every page",
		UsageText: "ocrproof pages <document>",
		Action:    cmd.run,
	})

	return app
}

func (cmd *PagesCmd) run(ctx context.Context, c *cli.Command) error {
	location := c.Args().First()
	if location == "" {
		return fmt.Errorf("document path or URL is required")
	}

	widget, err := openWidget(ctx, cmd.flags.Config, location)
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, page := range widget.Pages() {
		id, _ := hocr.Attr(page, "id")
		fmt.Fprintf(&b, "== page %d %s\n", i+1, id)
		b.WriteString(hocr.PageText(page))
		b.WriteString("\n")
	}
	return writeOutput("", []byte(b.String()))
}
