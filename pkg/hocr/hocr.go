// Package hocr implements the document side of the proofreader: loading hOCR
// markup into a live node tree, reading the positional metadata carried in
// title attributes, and resolving the render geometry of individual words.
//
// This package provides:
//
// - Parse: decodes and parses hOCR markup into a Document
// - ParseOptions: reads the "key value; key2 value2" title mini-language
// - ResolveWord: derives a word's box and baseline from the word and its ancestors
// - Render: serializes the (possibly edited) tree back to markup
//
// The hOCR hierarchy is Document → Pages → Areas → Paragraphs → Lines → Words,
// with metadata at each level. Only pages ('ocr_page') and words ('ocrx_word')
// are addressed directly; intermediate levels only contribute inherited
// properties such as the line baseline.
//
// Key Types:
//
// - Document: parsed markup with shortcuts to head and body
// - Options: parsed title properties of one node
// - BoundingBox: rectangle in page coordinates, from the 'bbox' property
// - Baseline: slope and offset, from the 'baseline' property
// - WordGeometry: everything needed to draw one word
package hocr
