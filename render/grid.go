package render

import "outloud/html"

// Grid draws a content-tree table for table navigation: box-drawn cells,
// headers in bold, the navigator's current cell highlighted.
type Grid struct {
	table *html.Node
	row   int
	col   int
}

// NewGrid creates a grid over a table node with the cell at (row, col)
// highlighted.
func NewGrid(table *html.Node, row, col int) *Grid {
	return &Grid{table: table, row: row, col: col}
}

// columnWidths sizes each column to its widest cell. Ragged rows just
// contribute to the columns they have.
func (g *Grid) columnWidths() []int {
	var widths []int
	for _, row := range g.table.Rows() {
		for i, cell := range row.Cells() {
			w := StringWidth(cell.Text)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// TotalWidth returns the width the grid will occupy.
func (g *Grid) TotalWidth() int {
	total := 1
	for _, w := range g.columnWidths() {
		total += w + 3
	}
	return total
}

// Draw renders the grid onto the canvas and returns the height used.
// The caption, when present, goes above the box.
func (g *Grid) Draw(c *Canvas, x, y int) int {
	rows := g.table.Rows()
	if len(rows) == 0 {
		return 0
	}

	widths := g.columnWidths()
	currentY := y

	if g.table.Caption != "" {
		c.WriteString(x+1, currentY, Truncate(g.table.Caption, c.Width()-x-2), Style{Bold: true})
		currentY++
	}

	g.drawBorder(c, x, currentY, widths, SingleBox.TopLeft, SingleBox.TopTee, SingleBox.TopRight)
	currentY++

	for ri, row := range rows {
		g.drawRow(c, x, currentY, ri, row.Cells(), widths)
		currentY++
		if ri < len(rows)-1 {
			g.drawBorder(c, x, currentY, widths, SingleBox.LeftTee, SingleBox.Cross, SingleBox.RightTee)
			currentY++
		}
	}

	g.drawBorder(c, x, currentY, widths, SingleBox.BottomLeft, SingleBox.BottomTee, SingleBox.BottomRight)
	currentY++

	return currentY - y
}

func (g *Grid) drawBorder(c *Canvas, x, y int, widths []int, left, mid, right rune) {
	currentX := x
	c.Set(currentX, y, left, Style{})
	currentX++

	for i, w := range widths {
		for j := 0; j < w+2; j++ {
			c.Set(currentX, y, SingleBox.Horizontal, Style{})
			currentX++
		}
		if i < len(widths)-1 {
			c.Set(currentX, y, mid, Style{})
		} else {
			c.Set(currentX, y, right, Style{})
		}
		currentX++
	}
}

func (g *Grid) drawRow(c *Canvas, x, y, rowIndex int, cells []*html.Node, widths []int) {
	currentX := x
	c.Set(currentX, y, SingleBox.Vertical, Style{})
	currentX++

	for i, width := range widths {
		style := Style{}
		text := ""
		if i < len(cells) {
			text = cells[i].Text
			if cells[i].Header {
				style.Bold = true
			}
		}
		if rowIndex == g.row && i == g.col {
			style.Reverse = true
		}

		c.Set(currentX, y, ' ', style)
		currentX++
		c.WriteString(currentX, y, padRight(text, width), style)
		currentX += width
		c.Set(currentX, y, ' ', style)
		currentX++

		c.Set(currentX, y, SingleBox.Vertical, Style{})
		currentX++
	}
}
