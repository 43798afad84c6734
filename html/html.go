// Package html parses a page into the content tree the reader narrates:
// an ordered tree of categorized nodes with a single focus mark.
package html

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

// Category identifies the kind of content node.
type Category int

const (
	Document Category = iota
	Heading
	Paragraph
	Image
	Link
	Button
	Table
	Row
	Cell
)

// Node is one node of the content tree.
type Node struct {
	Category Category
	Level    int    // heading level 1-6
	Text     string // aggregated text content
	Alt      string // image description
	Href     string // link target
	Caption  string // table caption
	Header   bool   // cell is a column header
	Injected bool   // inserted by the reader for its own controls

	Parent   *Node
	Children []*Node
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// PrependChild adds c as the first child of n.
func (n *Node) PrependChild(c *Node) {
	c.Parent = n
	n.Children = append([]*Node{c}, n.Children...)
}

// Rows returns a table node's rows in document order.
func (n *Node) Rows() []*Node {
	var rows []*Node
	for _, c := range n.Children {
		if c.Category == Row {
			rows = append(rows, c)
		}
	}
	return rows
}

// Cells returns a row node's cells in document order.
func (n *Node) Cells() []*Node {
	var cells []*Node
	for _, c := range n.Children {
		if c.Category == Cell {
			cells = append(cells, c)
		}
	}
	return cells
}

// TableAncestor returns the nearest enclosing table node, or nil.
func (n *Node) TableAncestor() *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Category == Table {
			return p
		}
	}
	return nil
}

// Tree is a parsed page: the content root, the page title, and the one
// node currently marked as focused (the narration cursor).
type Tree struct {
	Root    *Node
	Title   string
	focused *Node
}

// NewTree creates an empty tree with a document root.
func NewTree() *Tree {
	return &Tree{Root: &Node{Category: Document}}
}

// Append adds a node to the end of the document.
func (t *Tree) Append(n *Node) {
	t.Root.AppendChild(n)
}

// Focus marks n as the current node, unmarking any previous focus.
// At most one node is focused at a time.
func (t *Tree) Focus(n *Node) {
	t.focused = n
}

// Focused returns the focused node, or nil before the first narration.
func (t *Tree) Focused() *Node {
	return t.focused
}

// Blur clears the focus mark.
func (t *Tree) Blur() {
	t.focused = nil
}

// InjectControls prepends reader-owned button nodes to the document, one
// per label. Injected nodes render as on-screen controls but are never
// visited by reading-order traversal.
func (t *Tree) InjectControls(labels []string) {
	for i := len(labels) - 1; i >= 0; i-- {
		t.Root.PrependChild(&Node{Category: Button, Text: labels[i], Injected: true})
	}
}

// narratable reports whether traversal should stop on n.
func narratable(n *Node) bool {
	return !n.Injected && n.Describe() != ""
}

func (n *Node) childIndex() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// successor returns the next node in pre-order document order.
func successor(n *Node) *Node {
	if len(n.Children) > 0 {
		return n.Children[0]
	}
	for n != nil {
		if i := n.childIndex(); i >= 0 && i+1 < len(n.Parent.Children) {
			return n.Parent.Children[i+1]
		}
		n = n.Parent
	}
	return nil
}

// predecessor returns the previous node in pre-order document order.
func predecessor(n *Node) *Node {
	i := n.childIndex()
	if i < 0 {
		return nil
	}
	if i == 0 {
		return n.Parent
	}
	prev := n.Parent.Children[i-1]
	for len(prev.Children) > 0 {
		prev = prev.Children[len(prev.Children)-1]
	}
	return prev
}

// NextNarratable returns the first narratable node after from in document
// order, or nil at end of document. A nil from starts from the beginning.
func (t *Tree) NextNarratable(from *Node) *Node {
	n := from
	if n == nil {
		n = t.Root
	}
	for n = successor(n); n != nil; n = successor(n) {
		if narratable(n) {
			return n
		}
	}
	return nil
}

// PrevNarratable returns the first narratable node before from in
// document order, or nil if from is already the first one.
func (t *Tree) PrevNarratable(from *Node) *Node {
	if from == nil {
		return nil
	}
	for n := predecessor(from); n != nil; n = predecessor(n) {
		if n == t.Root {
			return nil
		}
		if narratable(n) {
			return n
		}
	}
	return nil
}

// Walk visits every node in pre-order, stopping early if fn returns
// false.
func (t *Tree) Walk(fn func(*Node) bool) {
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if !fn(n) {
			return false
		}
		for _, c := range n.Children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(t.Root)
}

// Parse builds the content tree for a page.
func Parse(r io.Reader) (*Tree, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return nil, err
	}

	tree := NewTree()
	if title := findElement(doc, "title"); title != nil {
		tree.Title = textContent(title)
	}

	// Prefer the article content scope when the page declares one.
	scope := findElement(doc, "article")
	if scope == nil {
		scope = findElement(doc, "main")
	}
	if scope == nil {
		scope = findElement(doc, "body")
	}
	if scope == nil {
		scope = doc
	}

	extractContent(scope, tree.Root)
	return tree, nil
}

// ParseString parses a page from a string.
func ParseString(s string) (*Tree, error) {
	return Parse(strings.NewReader(s))
}

func findElement(n *nethtml.Node, tag string) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func extractContent(n *nethtml.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode {
			continue
		}
		switch c.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(c.Data[1] - '0')
			parent.AppendChild(&Node{Category: Heading, Level: level, Text: textContent(c)})

		case "p", "li", "pre", "dt", "dd", "figcaption":
			node := &Node{Category: Paragraph, Text: textContent(c)}
			parent.AppendChild(node)
			extractInteractive(c, node)

		case "img":
			parent.AppendChild(&Node{Category: Image, Alt: getAttr(c, "alt")})

		case "a":
			parent.AppendChild(&Node{Category: Link, Text: textContent(c), Href: getAttr(c, "href")})

		case "button":
			parent.AppendChild(&Node{Category: Button, Text: textContent(c)})

		case "input":
			if t := getAttr(c, "type"); t == "submit" || t == "button" {
				parent.AppendChild(&Node{Category: Button, Text: getAttr(c, "value")})
			}

		case "table":
			parent.AppendChild(extractTable(c))

		case "script", "style", "noscript", "svg", "nav", "iframe":
			// Not content.

		default:
			extractContent(c, parent)
		}
	}
}

// extractInteractive pulls links, buttons and images out of a text block
// as child nodes, so they are announced after the block they sit in.
func extractInteractive(n *nethtml.Node, parent *Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != nethtml.ElementNode {
			continue
		}
		switch c.Data {
		case "a":
			parent.AppendChild(&Node{Category: Link, Text: textContent(c), Href: getAttr(c, "href")})
		case "button":
			parent.AppendChild(&Node{Category: Button, Text: textContent(c)})
		case "img":
			parent.AppendChild(&Node{Category: Image, Alt: getAttr(c, "alt")})
		default:
			extractInteractive(c, parent)
		}
	}
}

// extractTable builds a table node, using goquery to select the caption,
// the rows, and each row's header-or-data cells.
func extractTable(tableElem *nethtml.Node) *Node {
	table := &Node{Category: Table}

	sel := goquery.NewDocumentFromNode(tableElem).Selection
	table.Caption = strings.TrimSpace(sel.Find("caption").First().Text())

	sel.Find("tr").Each(func(_ int, rowSel *goquery.Selection) {
		row := &Node{Category: Row}
		rowSel.Find("th, td").Each(func(_ int, cellSel *goquery.Selection) {
			row.AppendChild(&Node{
				Category: Cell,
				Text:     strings.TrimSpace(cellSel.Text()),
				Header:   goquery.NodeName(cellSel) == "th",
			})
		})
		table.AppendChild(row)
	})

	return table
}

func textContent(n *nethtml.Node) string {
	var sb strings.Builder
	var extract func(*nethtml.Node)
	extract = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func getAttr(n *nethtml.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
