package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// spaceRe matches a run of source whitespace inside one rendered line.
var spaceRe = regexp.MustCompile(`[ \t\r\n\f]+`)

// plainText renders sel as text where <br> is the only line break: every
// other whitespace run becomes a single space and markup is dropped.
func plainText(sel *goquery.Selection) string {
	var lines []string
	var line strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			line.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				lines = append(lines, line.String())
				line.Reset()
				return
			}
			fallthrough
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	lines = append(lines, line.String())

	for i, l := range lines {
		lines[i] = strings.Trim(spaceRe.ReplaceAllString(l, " "), " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// children materializes the ordered child nodes of sel for positional
// walks. Text nodes are kept even when blank, so offsets match the markup;
// comments are dropped.
func children(sel *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if len(c.Nodes) == 0 || c.Nodes[0].Type == html.CommentNode {
			return
		}
		out = append(out, c)
	})
	return out
}

// isElement reports whether sel is a single element with the given tag.
func isElement(sel *goquery.Selection, tag string) bool {
	return sel != nil && len(sel.Nodes) == 1 && sel.Nodes[0].Type == html.ElementNode && sel.Nodes[0].Data == tag
}

// textOf returns the text content of sel, or "" for a nil selection.
func textOf(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return sel.Text()
}

// cursor is an indexed position over a materialized list of sibling nodes.
type cursor struct {
	nodes []*goquery.Selection
	pos   int
}

func newCursor(nodes []*goquery.Selection) *cursor {
	return &cursor{nodes: nodes}
}

func (c *cursor) done() bool {
	return c.pos >= len(c.nodes)
}

func (c *cursor) current() *goquery.Selection {
	return c.at(c.pos)
}

// at returns the node at index i, or nil past either end of the list.
func (c *cursor) at(i int) *goquery.Selection {
	if i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// peek returns the node offset positions ahead of the cursor, or nil.
func (c *cursor) peek(offset int) *goquery.Selection {
	return c.at(c.pos + offset)
}

// scanUntil visits nodes from pos+offset forward until stop matches a node,
// visit returns false, or the list ends. It returns the index where the
// scan halted; len(nodes) means the end of the list was reached.
func (c *cursor) scanUntil(offset int, stop func(*goquery.Selection) bool, visit func(i int, n *goquery.Selection) bool) int {
	i := c.pos + offset
	for ; i < len(c.nodes); i++ {
		n := c.nodes[i]
		if stop(n) {
			return i
		}
		if !visit(i, n) {
			return i
		}
	}
	return len(c.nodes)
}

func isBreak(n *goquery.Selection) bool {
	return isElement(n, "br")
}
