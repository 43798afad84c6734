package reader

import (
	"testing"

	"outloud/html"
)

const raggedTable = `<!DOCTYPE html>
<html>
<head><title>Ragged</title></head>
<body>
<article>
	<table>
		<tr><td>only</td></tr>
		<tr><td>a</td><td>b</td><td>c</td></tr>
	</table>
</article>
</body>
</html>`

func firstTable(t *testing.T, tree *html.Tree) *html.Node {
	t.Helper()
	for _, n := range tree.Root.Children {
		if n.Category == html.Table {
			return n
		}
	}
	t.Fatal("fixture has no table")
	return nil
}

func TestTableNavEnterFocusesFirstCell(t *testing.T) {
	tree := parsePage(t, pageWithTable)
	nav := NewTableNav(tree)

	spoken, ok := nav.Enter(firstTable(t, tree))
	if !ok {
		t.Fatalf("Enter refused: %q", spoken)
	}
	if spoken != "Column header: Name" {
		t.Errorf("Enter spoke %q, want the first header cell", spoken)
	}
	if row, col := nav.Position(); row != 0 || col != 0 {
		t.Errorf("position = (%d, %d), want (0, 0)", row, col)
	}
	if tree.Focused() != nav.Current() {
		t.Error("entering a table should focus its first cell")
	}
}

func TestTableNavRefusesEmptyTable(t *testing.T) {
	tree := parsePage(t, `<html><head><title>x</title></head><body><article><table></table><p>after</p></article></body></html>`)
	nav := NewTableNav(tree)

	spoken, ok := nav.Enter(firstTable(t, tree))
	if ok {
		t.Fatal("Enter accepted a rowless table")
	}
	if spoken != msgNoRows {
		t.Errorf("refusal = %q, want %q", spoken, msgNoRows)
	}
	if nav.Table() != nil {
		t.Error("refused entry must not lock the table")
	}
}

func TestTableNavBoundaries(t *testing.T) {
	tree := parsePage(t, pageWithTable)
	nav := NewTableNav(tree)
	nav.Enter(firstTable(t, tree))

	cases := []struct {
		move func() (string, bool)
		want string
	}{
		{nav.MoveLeft, msgEdgeLeft},
		{nav.MoveUp, msgEdgeTop},
	}
	for _, tc := range cases {
		spoken, moved := tc.move()
		if moved {
			t.Errorf("move at boundary reported moved=true")
		}
		if spoken != tc.want {
			t.Errorf("boundary message = %q, want %q", spoken, tc.want)
		}
	}

	nav.MoveRight()
	if spoken, moved := nav.MoveRight(); moved || spoken != msgEdgeRight {
		t.Errorf("right edge = (%q, %v), want (%q, false)", spoken, moved, msgEdgeRight)
	}
	nav.MoveDown()
	if spoken, moved := nav.MoveDown(); moved || spoken != msgEdgeBottom {
		t.Errorf("bottom edge = (%q, %v), want (%q, false)", spoken, moved, msgEdgeBottom)
	}
}

func TestTableNavClampsRaggedRows(t *testing.T) {
	tree := parsePage(t, raggedTable)
	nav := NewTableNav(tree)
	nav.Enter(firstTable(t, tree))

	// Walk into the long row, out to its third cell, then back up: the
	// column clamps to the short row's only cell.
	if _, moved := nav.MoveDown(); !moved {
		t.Fatal("MoveDown into the long row failed")
	}
	nav.MoveRight()
	nav.MoveRight()
	if row, col := nav.Position(); row != 1 || col != 2 {
		t.Fatalf("position = (%d, %d), want (1, 2)", row, col)
	}

	spoken, moved := nav.MoveUp()
	if !moved {
		t.Fatal("MoveUp from the long row failed")
	}
	if row, col := nav.Position(); row != 0 || col != 0 {
		t.Errorf("clamped position = (%d, %d), want (0, 0)", row, col)
	}
	if spoken != "Table cell: only" {
		t.Errorf("clamped cell spoke %q", spoken)
	}
}

func TestTableNavExitReturnsTable(t *testing.T) {
	tree := parsePage(t, pageWithTable)
	nav := NewTableNav(tree)
	table := firstTable(t, tree)
	nav.Enter(table)
	nav.MoveDown()

	got := nav.Exit()
	if got != table {
		t.Errorf("Exit returned %+v, want the locked table", got)
	}
	if nav.Table() != nil {
		t.Error("Exit should release the lock")
	}
}
