package hocr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Options
	}{
		{
			name:  "empty",
			input: "",
			want:  Options{},
		},
		{
			name:  "bbox tokens",
			input: "bbox 1 2 3 4",
			want:  Options{"bbox": {"1", "2", "3", "4"}},
		},
		{
			name:  "quoted values keep the delimiter",
			input: `bbox "1 2 3 4";image "a;b.png"`,
			want: Options{
				"bbox":  {"1", "2", "3", "4"},
				"image": {"a;b.png"},
			},
		},
		{
			name:  "single quotes",
			input: `image 'scan;01.tif'; ppageno 0`,
			want: Options{
				"image":   {"scan;01.tif"},
				"ppageno": {"0"},
			},
		},
		{
			name:  "tesseract line",
			input: "bbox 36 92 618 116; baseline 0.002 -5; x_size 24; x_descenders 5",
			want: Options{
				"bbox":         {"36", "92", "618", "116"},
				"baseline":     {"0.002", "-5"},
				"x_size":       {"24"},
				"x_descenders": {"5"},
			},
		},
		{
			name:  "whitespace runs between tokens",
			input: "bbox  10\t20   30 40 ",
			want:  Options{"bbox": {"10", "20", "30", "40"}},
		},
		{
			name:  "garbage fragments are skipped",
			input: `garbage;bbox 1 2 3 4;;"oops";x_wconf 93`,
			want: Options{
				"bbox":    {"1", "2", "3", "4"},
				"x_wconf": {"93"},
			},
		},
		{
			name:  "last occurrence wins",
			input: "x_wconf 10; x_wconf 20",
			want:  Options{"x_wconf": {"20"}},
		},
		{
			name:  "escaped quotes are stored raw",
			input: `x_source "say \"hi\""; x_wconf 5`,
			want: Options{
				"x_source": {`say \"hi\"`},
				"x_wconf":   {"5"},
			},
		},
		{
			name:  "blank numeric value is dropped",
			input: `bbox " "; image p.png`,
			want:  Options{"image": {"p.png"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseOptions(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseOptions(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseOptions_TokenCountMatchesSource(t *testing.T) {
	tests := []struct {
		input string
		key   string
		want  int
	}{
		{"bbox 1 2 3 4", "bbox", 4},
		{"baseline 0 -3", "baseline", 2},
		{"bbox 5", "bbox", 1},
		{"bbox 1 2 3 4 5 6", "bbox", 6},
		{`baseline "0.5   -2"`, "baseline", 2},
	}
	for _, tc := range tests {
		assert.Len(t, ParseOptions(tc.input).Tokens(tc.key), tc.want, tc.input)
	}
}

func TestOptions_UnsetKey(t *testing.T) {
	for _, input := range []string{"", "bbox 1 2 3 4", ";;;", `"unterminated`, "x_wconf"} {
		opts := ParseOptions(input)

		v, ok := opts.Get("image")
		assert.False(t, ok, input)
		assert.Empty(t, v, input)
		assert.Nil(t, opts.Tokens("baseline"), input)

		_, ok = opts.Baseline()
		assert.False(t, ok, input)
	}
}

func TestOptions_Accessors(t *testing.T) {
	opts := ParseOptions(`bbox 10 20 50 40; baseline 0.01 -4; image "page 1.png"`)

	bbox, ok := opts.BBox()
	require.True(t, ok)
	assert.Equal(t, NewBoundingBox(10, 20, 50, 40), bbox)
	assert.Equal(t, 40.0, bbox.Width())
	assert.Equal(t, 20.0, bbox.Height())

	baseline, ok := opts.Baseline()
	require.True(t, ok)
	assert.Equal(t, Baseline{Slope: 0.01, Offset: -4}, baseline)

	image, ok := opts.Get("image")
	require.True(t, ok)
	assert.Equal(t, "page 1.png", image)

	joined, ok := opts.Get("bbox")
	require.True(t, ok)
	assert.Equal(t, "10 20 50 40", joined)

	// Only the designated keys are numeric
	assert.Nil(t, opts.Tokens("image"))
}

func TestOptions_BBoxNeedsFourNumbers(t *testing.T) {
	_, ok := ParseOptions("bbox 1 2 3").BBox()
	assert.False(t, ok)

	_, ok = ParseOptions("bbox a b c d").BBox()
	assert.False(t, ok)

	assert.Nil(t, ParseBoundingBoxFromTitle("x_wconf 9"))
	assert.Equal(t, &BoundingBox{X1: 1, Y1: 2, X2: 3, Y2: 4}, ParseBoundingBoxFromTitle("bbox 1 2 3 4; x_wconf 9"))
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, `say "hi"`, Unquote(`say \"hi\"`))
	assert.Equal(t, `it's`, Unquote(`it\'s`))
	assert.Equal(t, `C:\scans\p1.png`, Unquote(`C:\scans\p1.png`))
}
