package render

import (
	"fmt"
	"strings"

	"outloud/html"
	"outloud/keybind"
	"outloud/lineedit"
	"outloud/mode"
)

// View holds everything one frame of the interface needs. The event loop
// fills it in and calls Draw after every state change.
type View struct {
	Tree     *html.Tree
	Mode     mode.Mode
	Bindings []keybind.Binding
	Rate     float64
	Prompt   *lineedit.Editor // drawn in Edit mode
	Grid     *Grid            // drawn in Table mode
}

// Draw renders a full frame: title bar, content (or table grid), the URL
// prompt when editing, and the control bar.
func (v *View) Draw(c *Canvas) {
	c.Clear()
	v.drawTitleBar(c)

	contentTop := 2
	contentHeight := c.Height() - contentTop - 2

	if v.Mode == mode.Table && v.Grid != nil {
		x := (c.Width() - v.Grid.TotalWidth()) / 2
		if x < 2 {
			x = 2
		}
		v.Grid.Draw(c, x, contentTop)
	} else if v.Tree != nil {
		v.drawContent(c, contentTop, contentHeight)
	}

	if v.Mode == mode.Edit && v.Prompt != nil {
		v.drawPrompt(c, c.Height()-2)
	}

	v.drawControlBar(c, c.Height()-1)
}

func (v *View) drawTitleBar(c *Canvas) {
	bar := Style{Reverse: true}
	c.DrawHLine(0, 0, c.Width(), ' ', bar)

	title := "outloud"
	if v.Tree != nil && v.Tree.Title != "" {
		title = v.Tree.Title
	}
	c.WriteString(1, 0, Truncate(title, c.Width()-20), bar)

	status := fmt.Sprintf("%s · %.2fx", v.Mode, v.Rate)
	c.WriteString(c.Width()-StringWidth(status)-1, 0, status, bar)
}

// contentLine is one wrapped screen line of a top-level unit.
type contentLine struct {
	text    string
	style   Style
	focused bool
}

func (v *View) drawContent(c *Canvas, top, height int) {
	width := c.Width() - 4
	if width < 10 {
		width = 10
	}

	focusTop := topLevelAncestor(v.Tree, v.Tree.Focused())

	var lines []contentLine
	focusLine := 0
	for _, node := range v.Tree.Root.Children {
		focused := node == focusTop
		if focused {
			focusLine = len(lines)
		}
		for _, text := range wrapNode(node, width) {
			lines = append(lines, contentLine{text: text, style: nodeStyle(node), focused: focused})
		}
		lines = append(lines, contentLine{})
	}

	// Scroll so the focused unit sits in view.
	offset := 0
	if focusLine >= height {
		offset = focusLine - height/2
	}
	if offset > len(lines)-height {
		offset = len(lines) - height
	}
	if offset < 0 {
		offset = 0
	}

	for i := 0; i < height && offset+i < len(lines); i++ {
		line := lines[offset+i]
		y := top + i
		if line.focused {
			c.WriteString(0, y, "▌", Style{Bold: true})
		}
		style := line.style
		if line.focused {
			style.Bold = true
			style.Dim = false
		}
		c.WriteString(2, y, line.text, style)
	}
}

// topLevelAncestor walks up to the direct child of the root that holds
// the focused node, so nested focus (a link inside a paragraph, a cell
// inside a table) still highlights a whole unit.
func topLevelAncestor(tree *html.Tree, n *html.Node) *html.Node {
	for n != nil && n.Parent != nil && n.Parent != tree.Root {
		n = n.Parent
	}
	return n
}

func wrapNode(n *html.Node, width int) []string {
	switch n.Category {
	case html.Heading:
		return WrapText(n.Text, width)
	case html.Paragraph:
		return WrapText(n.Text, width)
	case html.Image:
		if n.Alt != "" {
			return WrapText("[image: "+n.Alt+"]", width)
		}
		return []string{"[image]"}
	case html.Link:
		return WrapText(n.Text, width)
	case html.Button:
		return []string{"[ " + Truncate(n.Text, width-4) + " ]"}
	case html.Table:
		label := fmt.Sprintf("[table · %d rows]", len(n.Rows()))
		if n.Caption != "" {
			label = fmt.Sprintf("[table · %s · %d rows]", n.Caption, len(n.Rows()))
		}
		return []string{Truncate(label, width)}
	default:
		return nil
	}
}

func nodeStyle(n *html.Node) Style {
	switch n.Category {
	case html.Heading:
		return Style{Bold: true}
	case html.Image, html.Table:
		return Style{Dim: true}
	case html.Link:
		return Style{Underline: true, FgColor: 34}
	default:
		return Style{}
	}
}

func (v *View) drawPrompt(c *Canvas, y int) {
	c.DrawHLine(0, y, c.Width(), ' ', Style{})
	x := c.WriteString(1, y, "URL: ", Style{Bold: true}) + 1
	x += c.WriteString(x, y, v.Prompt.BeforeCursor(), Style{})
	c.WriteString(x, y, "█", Style{})
	c.WriteString(x+1, y, v.Prompt.AfterCursor(), Style{})
}

// drawControlBar lists the current mode's bindings, one control per
// binding, so sighted users see what the help narration says.
func (v *View) drawControlBar(c *Canvas, y int) {
	bar := Style{Reverse: true}
	c.DrawHLine(0, y, c.Width(), ' ', bar)

	var sb strings.Builder
	for i, b := range v.Bindings {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(b.Key)
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(b.Description))
	}
	c.WriteString(1, y, Truncate(sb.String(), c.Width()-2), bar)
}
