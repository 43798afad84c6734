package reader

import "outloud/html"

// Boundary and refusal messages, narrated verbatim.
const (
	msgNoRows     = "This table has no rows to read."
	msgNoColumns  = "This table has no columns to read."
	msgEdgeRight  = "There are no more cells to the right."
	msgEdgeLeft   = "There are no more cells to the left."
	msgEdgeBottom = "There are no more rows below this one."
	msgEdgeTop    = "There are no more rows above this one."
)

// TableNav walks a table's rows and cells in two dimensions, independent
// of linear reading order. It is active only while Table mode is on the
// stack; the focused node is then always a cell of the locked table.
type TableNav struct {
	tree  *html.Tree
	table *html.Node
	row   int
	col   int
}

// NewTableNav creates a table navigator over the content tree.
func NewTableNav(tree *html.Tree) *TableNav {
	return &TableNav{tree: tree}
}

// Enter locks onto a table and focuses the first cell of its first row.
// A table with no rows, or no cells in its first row, is refused: the
// returned message explains why and ok is false.
func (t *TableNav) Enter(table *html.Node) (spoken string, ok bool) {
	rows := table.Rows()
	if len(rows) == 0 {
		return msgNoRows, false
	}
	cells := rows[0].Cells()
	if len(cells) == 0 {
		return msgNoColumns, false
	}

	t.table = table
	t.row = 0
	t.col = 0
	t.tree.Focus(cells[0])
	return cells[0].DescribeCell(), true
}

// MoveRight moves one cell right within the current row. At the row's
// last cell it narrates the boundary and stays put.
func (t *TableNav) MoveRight() (spoken string, moved bool) {
	cells := t.currentRowCells()
	if t.col+1 >= len(cells) {
		return msgEdgeRight, false
	}
	t.col++
	t.tree.Focus(cells[t.col])
	return cells[t.col].DescribeCell(), true
}

// MoveLeft moves one cell left within the current row.
func (t *TableNav) MoveLeft() (spoken string, moved bool) {
	if t.col == 0 {
		return msgEdgeLeft, false
	}
	cells := t.currentRowCells()
	t.col--
	t.tree.Focus(cells[t.col])
	return cells[t.col].DescribeCell(), true
}

// MoveDown moves to the same column in the row below, clamping to the
// shorter row's last cell when the table is ragged.
func (t *TableNav) MoveDown() (spoken string, moved bool) {
	rows := t.table.Rows()
	if t.row+1 >= len(rows) {
		return msgEdgeBottom, false
	}
	t.row++
	return t.clampAndFocus(), true
}

// MoveUp moves to the same column in the row above, clamping like
// MoveDown.
func (t *TableNav) MoveUp() (spoken string, moved bool) {
	if t.row == 0 {
		return msgEdgeTop, false
	}
	t.row--
	return t.clampAndFocus(), true
}

func (t *TableNav) clampAndFocus() string {
	cells := t.currentRowCells()
	if t.col >= len(cells) {
		t.col = len(cells) - 1
	}
	t.tree.Focus(cells[t.col])
	return cells[t.col].DescribeCell()
}

func (t *TableNav) currentRowCells() []*html.Node {
	return t.table.Rows()[t.row].Cells()
}

// Describe re-reads the current cell.
func (t *TableNav) Describe() string {
	return t.currentRowCells()[t.col].DescribeCell()
}

// Current returns the focused cell.
func (t *TableNav) Current() *html.Node {
	return t.currentRowCells()[t.col]
}

// Position returns the zero-based (row, column) of the current cell.
func (t *TableNav) Position() (row, col int) {
	return t.row, t.col
}

// Table returns the locked table, or nil when not active.
func (t *TableNav) Table() *html.Node {
	return t.table
}

// Exit releases the lock and returns the table node so linear narration
// can resume from its position.
func (t *TableNav) Exit() *html.Node {
	table := t.table
	t.table = nil
	return table
}
