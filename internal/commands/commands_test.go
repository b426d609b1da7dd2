package commands

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/gardar/ocrproof/internal/config"
)

const book = `<!DOCTYPE html>
<html><head><title>scan</title><meta charset="utf-8"/></head>
<body>
<div class="ocr_page" id="page_1" title='image "p1.png"; bbox 0 0 100 200'>
<span class="ocr_line" id="line_1" title="bbox 10 20 50 40"><span class="ocrx_word" id="word_1" title="bbox 10 20 50 40">Hello</span></span>
</div>
<div class="ocr_page" id="page_2" title='image "missing.png"; bbox 0 0 100 200'>
<span class="ocr_line" id="line_2" title="bbox 10 20 90 40"><span class="ocrx_word" id="word_2" title="bbox 10 20 90 40">World</span></span>
</div>
<div class="ocr_page" id="page_3"></div>
</body></html>
`

// writeBook stores the document and the image of its first page in a
// temporary directory and returns the document path
func writeBook(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 10, 20))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p1.png"), img.Bytes(), 0o644))

	path := filepath.Join(dir, "book.hocr")
	require.NoError(t, os.WriteFile(path, []byte(book), 0o644))
	return path
}

func testFlags() *Flags {
	return &Flags{Config: config.Default()}
}

func TestOpenWidget(t *testing.T) {
	path := writeBook(t)

	widget, err := openWidget(context.Background(), config.Default(), path)
	require.NoError(t, err)
	assert.Len(t, widget.Pages(), 3)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "p1.png"), widget.Overlay().ImageHref())

	_, err = openWidget(context.Background(), config.Default(), filepath.Join(t.TempDir(), "none.hocr"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSelectPage(t *testing.T) {
	widget, err := openWidget(context.Background(), config.Default(), writeBook(t))
	require.NoError(t, err)

	require.NoError(t, selectPage(widget, 2))
	assert.Equal(t, widget.Pages()[1], widget.Current())

	require.NoError(t, selectPage(widget, 1))
	assert.Equal(t, widget.Pages()[0], widget.Current())

	assert.ErrorContains(t, selectPage(widget, 4), "no page 4")
	assert.Error(t, selectPage(widget, 0))
}

func TestProofCmd_Collect(t *testing.T) {
	widget, err := openWidget(context.Background(), config.Default(), writeBook(t))
	require.NoError(t, err)

	cmd := NewProofCmd(testFlags())
	pages, err := cmd.collect(context.Background(), widget)
	require.NoError(t, err)

	// The third page has no box
	require.Len(t, pages, 2)
	assert.NotEmpty(t, pages[0].Image)
	assert.Empty(t, pages[1].Image)
	require.Len(t, pages[1].Words, 1)
	assert.Equal(t, "World", pages[1].Words[0].Text)
}

func run(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) error {
	t.Helper()
	app := register(&cli.Command{Name: "ocrproof"})
	return app.Run(context.Background(), append([]string{"ocrproof"}, args...))
}

func TestCommands(t *testing.T) {
	path := writeBook(t)
	out := t.TempDir()
	flags := testFlags()

	t.Run("export", func(t *testing.T) {
		target := filepath.Join(out, "book.html")
		require.NoError(t, run(t, NewExportCmd(flags).Register, "export", "-o", target, path))

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), `id="word_2"`)
		assert.NotContains(t, string(data), "contenteditable")
	})

	t.Run("render", func(t *testing.T) {
		target := filepath.Join(out, "page2.svg")
		require.NoError(t, run(t, NewRenderCmd(flags).Register, "render", "--page", "2", "--words", "-o", target, path))

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), `id="rect_word_2"`)
		assert.NotContains(t, string(data), `id="rect_word_1"`)
	})

	t.Run("render bad zoom", func(t *testing.T) {
		err := run(t, NewRenderCmd(flags).Register, "render", "--zoom", "huge", "-o", filepath.Join(out, "x.svg"), path)
		assert.Error(t, err)
	})

	t.Run("proof", func(t *testing.T) {
		target := filepath.Join(out, "book.pdf")
		require.NoError(t, run(t, NewProofCmd(flags).Register, "proof", "-o", target, path))

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("missing document", func(t *testing.T) {
		err := run(t, NewExportCmd(flags).Register, "export")
		assert.ErrorContains(t, err, "document path or URL is required")
	})
}
