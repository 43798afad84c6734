// Package reader implements the navigation-and-narration engine: linear
// reading order, table navigation, and the session state machine that
// routes keystrokes between them.
package reader

import "outloud/html"

// Navigator walks reading order: narratable nodes in document order,
// skipping reader-injected controls. The cursor is the tree's focus
// mark, held as a direct node handle.
type Navigator struct {
	tree *html.Tree
}

// NewNavigator creates a navigator over a content tree.
func NewNavigator(tree *html.Tree) *Navigator {
	return &Navigator{tree: tree}
}

// Next moves focus to the next narratable unit and returns it. At end of
// document it returns nil and the focus stays where it is. With no focus
// yet, scanning begins from the start of the document.
func (n *Navigator) Next() *html.Node {
	next := n.tree.NextNarratable(n.tree.Focused())
	if next == nil {
		return nil
	}
	n.tree.Focus(next)
	return next
}

// Prev moves focus to the previous narratable unit and returns it. At
// the first unit, or before any focus exists, it returns nil and the
// position is unchanged.
func (n *Navigator) Prev() *html.Node {
	prev := n.tree.PrevNarratable(n.tree.Focused())
	if prev == nil {
		return nil
	}
	n.tree.Focus(prev)
	return prev
}

// Current returns the focused node, or nil before the first narration.
func (n *Navigator) Current() *html.Node {
	return n.tree.Focused()
}

// JumpTo moves the cursor directly to a node, without narration.
func (n *Navigator) JumpTo(node *html.Node) {
	n.tree.Focus(node)
}
