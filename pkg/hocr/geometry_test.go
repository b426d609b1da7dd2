package hocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse([]byte(markup))
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *Document, id string) *html.Node {
	t.Helper()
	n := FindByID(doc.Root, id)
	require.NotNil(t, n, "no element with id %q", id)
	return n
}

func TestResolveWord_NoBBox(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 100 100">
		<span class="ocr_line" title="bbox 0 0 100 20; baseline 0 -2">
			<span class="ocrx_word" id="w1" title="x_wconf 90">lost</span>
		</span></div></body></html>`)

	_, ok := ResolveWord(byID(t, doc, "w1"))
	assert.False(t, ok)
}

func TestResolveWord_ParentBaseline(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 1000 1000">
		<span class="ocr_line" title="bbox 10 20 200 60; baseline 0.01 -7">
			<span class="ocrx_word" id="w1" title="bbox 12 22 80 58"> Hello </span>
		</span></div></body></html>`)

	g, ok := ResolveWord(byID(t, doc, "w1"))
	require.True(t, ok)
	assert.Equal(t, NewBoundingBox(12, 22, 80, 58), g.BBox)
	assert.Equal(t, NewBoundingBox(10, 20, 200, 60), g.LineBBox)
	assert.True(t, g.HasBaseline)
	assert.Equal(t, Baseline{Slope: 0.01, Offset: -7}, g.Baseline)
	assert.Equal(t, 53.0, g.BaselineY())
	assert.Equal(t, 68.0, g.TextLength())
	assert.Equal(t, "Hello", g.Text)
}

func TestResolveWord_GrandparentBaseline(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 1000 1000">
		<span class="ocr_line" title="bbox 0 100 500 140; baseline 0 -4">
			<em title="bbox 5 101 90 139"><span class="ocrx_word" id="w1" title="bbox 5 101 90 139">word</span></em>
		</span></div></body></html>`)

	g, ok := ResolveWord(byID(t, doc, "w1"))
	require.True(t, ok)
	assert.True(t, g.HasBaseline)
	assert.Equal(t, NewBoundingBox(0, 100, 500, 140), g.LineBBox)
	assert.Equal(t, 136.0, g.BaselineY())
}

func TestResolveWord_NoBaselineContributesZero(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 1000 1000">
		<div class="ocr_par" title="bbox 0 0 600 300">
			<span class="ocr_line" title="bbox 0 100 500 140">
				<span class="ocrx_word" id="w1" title="bbox 5 101 90 139">word</span>
			</span>
		</div></div></body></html>`)

	g, ok := ResolveWord(byID(t, doc, "w1"))
	require.True(t, ok)
	assert.False(t, g.HasBaseline)
	assert.Equal(t, Baseline{}, g.Baseline)
	assert.Equal(t, 140.0, g.BaselineY())
}

func TestResolveWord_InheritanceStopsAtTwoLevels(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 1000 1000; baseline 0 -50">
		<div class="ocr_par">
			<span class="ocr_line">
				<span class="ocrx_word" id="w1" title="bbox 5 101 90 139">word</span>
			</span>
		</div></div></body></html>`)

	g, ok := ResolveWord(byID(t, doc, "w1"))
	require.True(t, ok)
	assert.False(t, g.HasBaseline)
	// Neither ancestor has a bbox either, the word box is the reference
	assert.Equal(t, 139.0, g.BaselineY())
}

func TestResolveWord_BaselineScopeWithoutBBox(t *testing.T) {
	doc := mustParse(t, `<html><body><div class="ocr_page" title="bbox 0 0 1000 1000">
		<div class="ocr_par" title="bbox 0 0 600 300">
			<span class="ocr_line" title="baseline 0 -3">
				<span class="ocrx_word" id="w1" title="bbox 5 101 90 139">word</span>
			</span>
		</div></div></body></html>`)

	g, ok := ResolveWord(byID(t, doc, "w1"))
	require.True(t, ok)
	assert.True(t, g.HasBaseline)
	assert.Equal(t, g.BBox, g.LineBBox)
	assert.Equal(t, 136.0, g.BaselineY())
}

func TestInherit(t *testing.T) {
	word := ParseOptions("bbox 1 2 3 4")
	line := ParseOptions("baseline 0 -1")
	page := ParseOptions("baseline 0 -9; image p.png")

	got, ok := Inherit("baseline", word, line, page)
	require.True(t, ok)
	assert.Equal(t, line, got)

	got, ok = Inherit("image", word, line, page)
	require.True(t, ok)
	assert.Equal(t, page, got)

	_, ok = Inherit("x_wconf", word, line, page)
	assert.False(t, ok)

	_, ok = Inherit("bbox")
	assert.False(t, ok)
}
