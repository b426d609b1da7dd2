package hocr

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// numericKeys are the properties whose values are split into number tokens.
var numericKeys = map[string]bool{
	"bbox":     true,
	"baseline": true,
}

// entryPattern matches one "key value" entry at the start of the input. The
// value is a bare word, or a double or single quoted string in which the
// matching quote may be escaped with a backslash.
var entryPattern = regexp.MustCompile(
	`^\s*(\w+)\s+(?:([^;"']+?)|"((?:\\"|[^"])+?)"|'((?:\\'|[^'])+?)')\s*(?:;|$)`)

// Options holds the properties parsed from one title attribute.
// Numeric keys (bbox, baseline) hold their whitespace separated tokens,
// every other key holds a single element with the raw value.
type Options map[string][]string

// ParseOptions breaks down an hOCR title attribute into its properties.
// Example input: `bbox 100 200 300 400; image "page 1.png"; x_wconf 95`
//
// The scan is best effort: a fragment that is not a valid entry is skipped up
// to the next ';' and parsing continues. Producers of hOCR are inconsistent
// and a proofreader should still show whatever geometry it can find, so
// garbage is ignored silently rather than reported. When a key occurs more
// than once the last occurrence wins. Quoted values are stored as written,
// escapes included; see Unquote.
func ParseOptions(raw string) Options {
	result := make(Options)
	pos := 0
	for pos < len(raw) {
		m := entryPattern.FindStringSubmatchIndex(raw[pos:])
		if m == nil {
			next := strings.IndexByte(raw[pos:], ';')
			if next < 0 {
				break
			}
			pos += next + 1
			continue
		}

		key := raw[pos+m[2] : pos+m[3]]
		var value string
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				value = raw[pos+m[2*g] : pos+m[2*g+1]]
				break
			}
		}
		pos += m[1]

		if numericKeys[key] {
			tokens := strings.Fields(value)
			if len(tokens) == 0 {
				continue
			}
			result[key] = tokens
		} else {
			result[key] = []string{value}
		}
	}
	return result
}

// NodeOptions parses the title attribute of n. Nodes without a title, and a
// nil node, give empty options.
func NodeOptions(n *html.Node) Options {
	if n == nil {
		return Options{}
	}
	title, _ := Attr(n, "title")
	return ParseOptions(title)
}

var quoteUnescaper = strings.NewReplacer(`\"`, `"`, `\'`, `'`)

// Unquote resolves escaped quotes in a quoted option value. Other backslashes
// are left alone.
func Unquote(value string) string {
	return quoteUnescaper.Replace(value)
}

// Has reports whether the key was present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Get returns the value of key as written. Numeric keys are joined with
// single spaces.
func (o Options) Get(key string) (string, bool) {
	v, ok := o[key]
	if !ok {
		return "", false
	}
	return strings.Join(v, " "), true
}

// Tokens returns the number tokens of a numeric key, or nil.
func (o Options) Tokens(key string) []string {
	if !numericKeys[key] {
		return nil
	}
	return o[key]
}

// Floats converts the tokens of a numeric key. It fails if the key is
// missing, holds fewer than min tokens, or one of the tokens is not a number.
func (o Options) Floats(key string, min int) ([]float64, bool) {
	tokens := o.Tokens(key)
	if len(tokens) == 0 || len(tokens) < min {
		return nil, false
	}
	out := make([]float64, len(tokens))
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// BBox returns the 'bbox' property.
func (o Options) BBox() (BoundingBox, bool) {
	v, ok := o.Floats("bbox", 4)
	if !ok {
		return BoundingBox{}, false
	}
	return NewBoundingBox(v[0], v[1], v[2], v[3]), true
}

// Baseline returns the 'baseline' property.
func (o Options) Baseline() (Baseline, bool) {
	v, ok := o.Floats("baseline", 2)
	if !ok {
		return Baseline{}, false
	}
	return Baseline{Slope: v[0], Offset: v[1]}, true
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if the title has no usable bbox
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	if bbox, ok := ParseOptions(title).BBox(); ok {
		return &bbox
	}
	return nil
}
