package hocr

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of a specific attribute of a node
func Attr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key && attr.Namespace == "" {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing value
func SetAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key && attr.Namespace == "" {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute and reports whether it was present
func RemoveAttr(n *html.Node, key string) bool {
	for i, attr := range n.Attr {
		if attr.Key == key && attr.Namespace == "" {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// HasClass reports whether the class attribute of n contains class as a
// whole token
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	classes, _ := Attr(n, "class")
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to the class attribute unless already present
func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	classes, _ := Attr(n, "class")
	if classes = strings.TrimSpace(classes); classes != "" {
		classes += " "
	}
	SetAttr(n, "class", classes+class)
}

// RemoveClass drops class from the class attribute. The attribute itself is
// removed when no class remains.
func RemoveClass(n *html.Node, class string) {
	classes, ok := Attr(n, "class")
	if !ok {
		return
	}
	var kept []string
	for _, c := range strings.Fields(classes) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ElementsByClass returns the descendants of root carrying class, in
// document order. root itself is not included.
func ElementsByClass(root *html.Node, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if HasClass(c, class) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Ancestor returns the closest node, starting with n itself, that carries class
func Ancestor(n *html.Node, class string) *html.Node {
	for ; n != nil; n = n.Parent {
		if HasClass(n, class) {
			return n
		}
	}
	return nil
}

// FindByID returns the first element below root whose id attribute is id
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}
	if root.Type == html.ElementNode {
		if v, ok := Attr(root, "id"); ok && v == id {
			return root
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// TextContent gets all text from a node and its children
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(TextContent(c))
	}
	return text.String()
}

// findElement returns the first element named tag, searching depth first
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
