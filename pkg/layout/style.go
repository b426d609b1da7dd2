package layout

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
)

// setStyle sets one declaration of the inline style attribute, keeping the
// order of the others. An empty value removes the declaration.
func setStyle(n *html.Node, prop, value string) {
	current, _ := hocr.Attr(n, "style")

	var decls []string
	found := false
	for _, decl := range strings.Split(current, ";") {
		name, _, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == prop {
			found = true
			if value != "" {
				decls = append(decls, prop+": "+value)
			}
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if !found && value != "" {
		decls = append(decls, prop+": "+value)
	}

	if len(decls) == 0 {
		hocr.RemoveAttr(n, "style")
		return
	}
	hocr.SetAttr(n, "style", strings.Join(decls, "; "))
}

// style returns the value of one inline style declaration
func style(n *html.Node, prop string) string {
	current, _ := hocr.Attr(n, "style")
	for _, decl := range strings.Split(current, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(name) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
