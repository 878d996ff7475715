package remores

import "golang.org/x/net/html"

// The reservation system renders bookings through a fixed template with no
// ids or classes, so rows are located by walking sibling and child pointers
// from the few selectable anchor nodes. The helpers below keep those walks
// short, named and testable; each returns nil (or ok=false) when the
// expected node is missing, and callers turn that into a parse error.

// nextSibling returns the n-th next sibling of node, counting text nodes.
func nextSibling(node *html.Node, n int) *html.Node {
	for i := 0; i < n && node != nil; i++ {
		node = node.NextSibling
	}
	return node
}

// prevSibling returns the n-th previous sibling of node, counting text nodes.
func prevSibling(node *html.Node, n int) *html.Node {
	for i := 0; i < n && node != nil; i++ {
		node = node.PrevSibling
	}
	return node
}

// firstChild returns the first child of node, or nil.
func firstChild(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	return node.FirstChild
}

// textOf returns the text content of node itself when it is a text node.
func textOf(node *html.Node) (string, bool) {
	if node == nil || node.Type != html.TextNode {
		return "", false
	}
	return node.Data, true
}

// firstChildText returns the text of node's first child when that child is
// a text node.
func firstChildText(node *html.Node) (string, bool) {
	return textOf(firstChild(node))
}
