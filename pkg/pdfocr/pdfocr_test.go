package pdfocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
)

func overlayPage(t *testing.T, words ...string) *layout.Overlay {
	t.Helper()
	o := layout.NewOverlay("")
	o.SetPage(hocr.NewBoundingBox(0, 0, 1000, 2000), "")
	for i, text := range words {
		y := float64(100 + i*60)
		box := hocr.NewBoundingBox(100, y, 400, y+50)
		g := hocr.WordGeometry{
			BBox:        box,
			LineBBox:    box,
			Baseline:    hocr.Baseline{Offset: -10},
			HasBaseline: i%2 == 0,
			Text:        text,
		}
		o.AddWord("rect_"+text, g, 42)
	}
	return o
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPageFromOverlay(t *testing.T) {
	o := overlayPage(t, "one", "two")
	page, ok := PageFromOverlay(o, nil)
	require.True(t, ok)
	assert.Len(t, page.Words, 2)
	assert.Equal(t, 1000.0, page.Box.Width())

	_, ok = PageFromOverlay(layout.NewOverlay(""), nil)
	assert.False(t, ok)
}

func TestProofSheet(t *testing.T) {
	text, ok := PageFromOverlay(overlayPage(t, "Hello", "wörld"), nil)
	require.True(t, ok)
	scan, ok := PageFromOverlay(overlayPage(t, "scanned"), pngImage(t))
	require.True(t, ok)

	config := DefaultConfig()
	config.PageWidth = 595
	out, err := ProofSheet([]Page{text, scan}, config)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 2, layerCount(out))

	config.Debug = true
	config.StartPage = 2
	out, err = ProofSheet([]Page{text, scan}, config)
	require.NoError(t, err)
	assert.Equal(t, 1, layerCount(out))
}

// layerCount counts the optional content groups of a PDF, one per text layer
func layerCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /OCG"))
}

func TestProofSheet_Errors(t *testing.T) {
	page, ok := PageFromOverlay(overlayPage(t, "x"), nil)
	require.True(t, ok)

	_, err := ProofSheet(nil, DefaultConfig())
	assert.ErrorContains(t, err, "no pages")

	config := DefaultConfig()
	config.StartPage = 0
	_, err = ProofSheet([]Page{page}, config)
	assert.ErrorContains(t, err, "at least 1")

	config.StartPage = 2
	_, err = ProofSheet([]Page{page}, config)
	assert.ErrorContains(t, err, "past the last page")

	broken := page
	broken.Image = []byte("not an image")
	_, err = ProofSheet([]Page{broken}, DefaultConfig())
	assert.ErrorContains(t, err, "invalid format")

	_, err = ProofSheet([]Page{{Box: hocr.NewBoundingBox(0, 0, 0, 10)}}, DefaultConfig())
	assert.ErrorContains(t, err, "empty bounding box")

	// Text outside Latin-1 cannot be encoded for the core fonts
	cjk, ok := PageFromOverlay(overlayPage(t, "日本"), nil)
	require.True(t, ok)
	_, err = ProofSheet([]Page{cjk}, DefaultConfig())
	assert.ErrorContains(t, err, "character encoding issues in 1 of 1 words")
}

func TestHelpers(t *testing.T) {
	x, y := normalizeCoords(500, 1000, 1000, 2000, 595, 1190)
	assert.Equal(t, 297.5, x)
	assert.Equal(t, 595.0, y)

	w, h := pageSize(1000, 2000, 0)
	assert.Equal(t, 1000.0, w)
	assert.Equal(t, 2000.0, h)
	w, h = pageSize(1000, 2000, 595)
	assert.Equal(t, 595.0, w)
	assert.Equal(t, 1190.0, h)

	kind, err := detectImageType(pngImage(t))
	require.NoError(t, err)
	assert.Equal(t, "PNG", kind)
}
