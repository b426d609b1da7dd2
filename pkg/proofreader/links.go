package proofreader

import "golang.org/x/net/html"

// LinkTable pairs editor nodes with layout nodes. Links are symmetric and
// exclusive: linking a node drops whatever it was linked to before, on both
// sides. The table does not own the nodes; Clear forgets them all.
type LinkTable struct {
	partners map[*html.Node]*html.Node
}

// NewLinkTable returns an empty table
func NewLinkTable() *LinkTable {
	return &LinkTable{partners: make(map[*html.Node]*html.Node)}
}

// Link associates a and b with each other
func (t *LinkTable) Link(a, b *html.Node) {
	if a == nil || b == nil {
		return
	}
	t.unlink(a)
	t.unlink(b)
	t.partners[a] = b
	t.partners[b] = a
}

// Resolve returns the partner of n, or nil
func (t *LinkTable) Resolve(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return t.partners[n]
}

// Clear drops all links
func (t *LinkTable) Clear() {
	clear(t.partners)
}

// Len is the number of links
func (t *LinkTable) Len() int {
	return len(t.partners) / 2
}

func (t *LinkTable) unlink(n *html.Node) {
	if old, ok := t.partners[n]; ok {
		delete(t.partners, old)
		delete(t.partners, n)
	}
}
