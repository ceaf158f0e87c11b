package goquery

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Step is one segment of a positional Path.
type Step struct {
	// Tag is the element name to match.
	Tag string

	// Nth selects the Nth match (1-based) among the children of each
	// context node. Zero keeps every match.
	Nth int

	// Attr and Value, when set, require an exact attribute value.
	Attr  string
	Value string

	// Deep matches descendants at any depth instead of direct children.
	Deep bool
}

// Path is a positional route through a table layout, written in a small
// XPath subset such as `//center/table[@height="58%"]/tr/td/table[1]/tr/td`.
//
// Table section wrappers (tbody, thead, tfoot) inserted by the HTML parser
// are transparent, so `table/tr` matches rows inside an implicit tbody.
type Path []Step

// ParsePath parses the XPath subset: "/" child steps, "//" descendant
// steps, and `[n]` or `[@attr="value"]` predicates.
func ParsePath(expr string) (Path, error) {
	var p Path
	deep := false
	rest := strings.TrimPrefix(expr, "/")
	if strings.HasPrefix(rest, "/") {
		deep = true
		rest = rest[1:]
	}
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" {
			deep = true
			continue
		}
		step, err := parseStep(seg)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", expr, err)
		}
		step.Deep = deep
		deep = false
		p = append(p, step)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("path %q: no steps", expr)
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(expr string) Path {
	p, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseStep(seg string) (Step, error) {
	tag, preds, _ := strings.Cut(seg, "[")
	step := Step{Tag: tag}
	if tag == "" {
		return Step{}, fmt.Errorf("empty tag in %q", seg)
	}
	for preds != "" {
		pred, tail, ok := strings.Cut(preds, "]")
		if !ok {
			return Step{}, fmt.Errorf("unclosed predicate in %q", seg)
		}
		preds = strings.TrimPrefix(tail, "[")
		if strings.HasPrefix(pred, "@") {
			name, value, ok := strings.Cut(pred[1:], "=")
			if !ok {
				return Step{}, fmt.Errorf("attribute predicate without value in %q", seg)
			}
			step.Attr = name
			step.Value = strings.Trim(value, `"'`)
			continue
		}
		n, err := strconv.Atoi(pred)
		if err != nil || n < 1 {
			return Step{}, fmt.Errorf("invalid position %q in %q", pred, seg)
		}
		step.Nth = n
	}
	return step, nil
}

// Select evaluates the path from every node of sel and returns the matched
// nodes in document order.
func (p Path) Select(sel *goquery.Selection) *goquery.Selection {
	nodes := sel.Nodes
	for _, step := range p {
		var next []*html.Node
		seen := make(map[*html.Node]bool)
		for _, n := range nodes {
			for _, m := range step.match(n) {
				if !seen[m] {
					seen[m] = true
					next = append(next, m)
				}
			}
		}
		nodes = next
		if len(nodes) == 0 {
			break
		}
	}
	return sel.FindNodes(nodes...)
}

func (s Step) match(n *html.Node) []*html.Node {
	var candidates []*html.Node
	if s.Deep {
		candidates = s.descendants(n, nil)
	} else {
		for _, c := range tableChildren(n) {
			if s.accepts(c) {
				candidates = append(candidates, c)
			}
		}
	}
	if s.Nth == 0 {
		return candidates
	}
	if s.Nth > len(candidates) {
		return nil
	}
	return candidates[s.Nth-1 : s.Nth]
}

func (s Step) descendants(n *html.Node, acc []*html.Node) []*html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s.accepts(c) {
			acc = append(acc, c)
		}
		acc = s.descendants(c, acc)
	}
	return acc
}

func (s Step) accepts(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != s.Tag {
		return false
	}
	if s.Attr == "" {
		return true
	}
	for _, a := range n.Attr {
		if a.Key == s.Attr {
			return a.Val == s.Value
		}
	}
	return false
}

// tableChildren returns the element children of n, descending through
// table section wrappers.
func tableChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if isTableSection(c) && !isTableSection(n) {
			out = append(out, tableChildren(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func isTableSection(n *html.Node) bool {
	switch n.Data {
	case "tbody", "thead", "tfoot":
		return n.Type == html.ElementNode
	}
	return false
}
