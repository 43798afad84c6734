package html

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<article>
	<h1>Test Title</h1>
	<p>This is a paragraph with a <a href="/more">link inside</a>.</p>
	<img src="cat.jpg" alt="a sleeping cat">
	<h2>Section</h2>
	<button>Subscribe</button>
	<table>
		<caption>Quarterly results</caption>
		<tr><th>Quarter</th><th>Revenue</th></tr>
		<tr><td>Q1</td><td>100</td></tr>
	</table>
</article>
</body>
</html>`

	tree, err := ParseString(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if tree.Title != "Test Page" {
		t.Errorf("title = %q, want %q", tree.Title, "Test Page")
	}

	kids := tree.Root.Children
	if len(kids) != 6 {
		t.Fatalf("expected 6 top-level nodes, got %d", len(kids))
	}

	if kids[0].Category != Heading || kids[0].Level != 1 || kids[0].Text != "Test Title" {
		t.Errorf("node 0 = %+v, want h1 'Test Title'", kids[0])
	}
	if kids[1].Category != Paragraph {
		t.Errorf("node 1 category = %v, want Paragraph", kids[1].Category)
	}
	if len(kids[1].Children) != 1 || kids[1].Children[0].Category != Link {
		t.Fatalf("paragraph should hold its inline link as a child")
	}
	if href := kids[1].Children[0].Href; href != "/more" {
		t.Errorf("link href = %q, want /more", href)
	}
	if kids[2].Category != Image || kids[2].Alt != "a sleeping cat" {
		t.Errorf("node 2 = %+v, want image with alt", kids[2])
	}
	if kids[3].Category != Heading || kids[3].Level != 2 {
		t.Errorf("node 3 = %+v, want h2", kids[3])
	}
	if kids[4].Category != Button || kids[4].Text != "Subscribe" {
		t.Errorf("node 4 = %+v, want button", kids[4])
	}
	if kids[5].Category != Table {
		t.Fatalf("node 5 category = %v, want Table", kids[5].Category)
	}
}

func TestParseTableStructure(t *testing.T) {
	tree, err := ParseString(`<body><table>
		<caption>Scores</caption>
		<tr><th>Name</th><th>Score</th></tr>
		<tr><td>Ada</td><td>10</td></tr>
		<tr><td>Grace</td><td>12</td></tr>
	</table></body>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	table := tree.Root.Children[0]
	if table.Caption != "Scores" {
		t.Errorf("caption = %q, want Scores", table.Caption)
	}

	rows := table.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	head := rows[0].Cells()
	if len(head) != 2 || !head[0].Header || head[0].Text != "Name" {
		t.Errorf("header row wrong: %+v", head)
	}
	data := rows[1].Cells()
	if len(data) != 2 || data[0].Header || data[0].Text != "Ada" {
		t.Errorf("data row wrong: %+v", data)
	}
}

func TestTraversalOrderSkipsInjected(t *testing.T) {
	tree := NewTree()
	header := &Node{Category: Heading, Level: 1, Text: "Title"}
	para := &Node{Category: Paragraph, Text: "Body"}
	tree.Append(header)
	tree.Append(para)
	tree.InjectControls([]string{"Next", "Pause"})

	first := tree.NextNarratable(nil)
	if first != header {
		t.Fatalf("first narratable = %+v, want the header", first)
	}
	second := tree.NextNarratable(first)
	if second != para {
		t.Fatalf("second narratable = %+v, want the paragraph", second)
	}
	if tree.NextNarratable(second) != nil {
		t.Error("expected end of document after the paragraph")
	}
}

func TestTraversalSkipsCellsInLinearOrder(t *testing.T) {
	tree := NewTree()
	table := &Node{Category: Table}
	row := &Node{Category: Row}
	row.AppendChild(&Node{Category: Cell, Text: "inside"})
	table.AppendChild(row)
	after := &Node{Category: Paragraph, Text: "after the table"}
	tree.Append(table)
	tree.Append(after)

	if got := tree.NextNarratable(nil); got != table {
		t.Fatalf("first narratable should be the table, got %+v", got)
	}
	if got := tree.NextNarratable(table); got != after {
		t.Errorf("advance from table should skip its cells, got %+v", got)
	}
}

func TestPrevNarratable(t *testing.T) {
	tree := NewTree()
	a := &Node{Category: Paragraph, Text: "one"}
	b := &Node{Category: Paragraph, Text: "two"}
	tree.Append(a)
	tree.Append(b)

	if got := tree.PrevNarratable(b); got != a {
		t.Errorf("prev of b = %+v, want a", got)
	}
	if got := tree.PrevNarratable(a); got != nil {
		t.Errorf("prev of first node = %+v, want nil", got)
	}
	if got := tree.PrevNarratable(nil); got != nil {
		t.Errorf("prev with no focus = %+v, want nil", got)
	}
}

func TestFocusSingleMark(t *testing.T) {
	tree := NewTree()
	a := &Node{Category: Paragraph, Text: "one"}
	b := &Node{Category: Paragraph, Text: "two"}
	tree.Append(a)
	tree.Append(b)

	if tree.Focused() != nil {
		t.Error("fresh tree should have no focus")
	}
	tree.Focus(a)
	tree.Focus(b)
	if tree.Focused() != b {
		t.Error("focus did not move to the new node")
	}
	tree.Blur()
	if tree.Focused() != nil {
		t.Error("blur did not clear focus")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		node *Node
		want string
	}{
		{&Node{Category: Heading, Level: 2, Text: "News"}, "Header 2: News"},
		{&Node{Category: Paragraph, Text: "Hello."}, "Paragraph: Hello."},
		{&Node{Category: Image, Alt: "a map"}, "Here is an image. It is described as: a map"},
		{&Node{Category: Image}, "Here is an image. No description is available."},
		{&Node{Category: Link, Text: "home"}, "Link: home. Press Enter to follow it."},
		{&Node{Category: Button, Text: "Go"}, "Button: Go. Press Enter to press it."},
		{&Node{Category: Table, Caption: "Results"}, "A table was found, captioned: Results. Press T. to explore it."},
		{&Node{Category: Table}, "A table was found. Press T. to explore it."},
		{&Node{Category: Row}, ""},
		{&Node{Category: Cell, Text: "x"}, ""},
		{&Node{Category: Document}, ""},
	}
	for _, c := range cases {
		if got := c.node.Describe(); got != c.want {
			t.Errorf("Describe(%v) = %q, want %q", c.node.Category, got, c.want)
		}
	}
}

func TestDescribeCell(t *testing.T) {
	header := &Node{Category: Cell, Text: "Name", Header: true}
	data := &Node{Category: Cell, Text: "Ada"}
	if got := header.DescribeCell(); got != "Column header: Name" {
		t.Errorf("header cell = %q", got)
	}
	if got := data.DescribeCell(); got != "Table cell: Ada" {
		t.Errorf("data cell = %q", got)
	}
}

func TestParseSkipsScriptsAndStyles(t *testing.T) {
	tree, err := ParseString(`<body><script>var x;</script><style>p{}</style><p>visible</p></body>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("expected only the paragraph, got %d nodes", len(tree.Root.Children))
	}
	if !strings.Contains(tree.Root.Children[0].Text, "visible") {
		t.Errorf("paragraph text = %q", tree.Root.Children[0].Text)
	}
}
