package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrproof/pkg/hocr"
)

func TestViewport_Scale(t *testing.T) {
	o := NewOverlay("")
	v := NewViewport(o, Rect{Left: 0, Top: 0, Right: 500, Bottom: 400})

	// No page yet
	assert.Equal(t, 1.0, v.Scale())
	assert.Equal(t, 400.0, v.ScrollHeight())

	o.SetPage(hocr.NewBoundingBox(0, 0, 1000, 2000), "")
	assert.Equal(t, 0.5, v.Scale())
	assert.Equal(t, 1000.0, v.ScrollHeight())

	o.SetZoom(ZoomPageFull)
	assert.Equal(t, 0.2, v.Scale())
	assert.Equal(t, 400.0, v.ScrollHeight())

	o.SetZoom(ZoomOriginal)
	assert.Equal(t, 1.0, v.Scale())
	assert.Equal(t, 2000.0, v.ScrollHeight())
}

func TestViewport_ScrollToClamps(t *testing.T) {
	o := NewOverlay("")
	o.SetPage(hocr.NewBoundingBox(0, 0, 1000, 2000), "")
	v := NewViewport(o, Rect{Right: 500, Bottom: 400})

	v.ScrollTo(-10, -10)
	assert.Equal(t, 0.0, v.ScrollTop())
	assert.Equal(t, 0.0, v.ScrollLeft())

	v.ScrollTo(5000, 0)
	assert.Equal(t, 600.0, v.ScrollTop())
}

func TestViewport_ClientRect(t *testing.T) {
	o := NewOverlay("")
	o.SetPage(hocr.NewBoundingBox(0, 0, 1000, 2000), "")
	v := NewViewport(o, Rect{Left: 20, Top: 30, Right: 520, Bottom: 430})
	item := o.AddWord("r1", word(100, 1000, 300, 1040, "w"), 42)

	r, ok := v.ClientRect(item.Rect)
	require.True(t, ok)
	assert.Equal(t, Rect{Left: 70, Top: 530, Right: 170, Bottom: 550}, r)

	v.ScrollTo(100, 0)
	r, ok = v.ClientRect(item.Rect)
	require.True(t, ok)
	assert.Equal(t, 430.0, r.Top)

	_, ok = v.ClientRect(o.Background)
	assert.False(t, ok)
	_, ok = v.OffsetRect(item.Rect)
	assert.False(t, ok)
}

func TestViewport_ScrollIntoView(t *testing.T) {
	o := NewOverlay("")
	o.SetPage(hocr.NewBoundingBox(0, 0, 1000, 2000), "")
	v := NewViewport(o, Rect{Right: 500, Bottom: 400})
	item := o.AddWord("r1", word(100, 1000, 300, 1040, "w"), 42)

	// Content rect of the word is top 500, bottom 520
	v.ScrollIntoView(item.Rect, AlignEnd)
	assert.Equal(t, 120.0, v.ScrollTop())

	v.ScrollIntoView(item.Rect, AlignStart)
	assert.Equal(t, 500.0, v.ScrollTop())
}
