package html

import "fmt"

// Key names spoken in link, button and table descriptions. Sessions
// overwrite them when the activate or table commands are rebound.
var (
	activateKeyName = "Enter"
	tableKeyName    = "T."
)

// SetNarrationKeys sets the spoken key names Describe uses, so a rebound
// command is announced with the key that actually triggers it.
func SetNarrationKeys(activate, table string) {
	if activate != "" {
		activateKeyName = activate
	}
	if table != "" {
		tableKeyName = table
	}
}

// Describe maps a node's category to its spoken description. An empty
// string means the node is not narratable and linear traversal skips it;
// that includes rows and cells, which are only read in table navigation.
func (n *Node) Describe() string {
	switch n.Category {
	case Heading:
		return fmt.Sprintf("Header %d: %s", n.Level, n.Text)

	case Paragraph:
		if n.Text == "" {
			return ""
		}
		return "Paragraph: " + n.Text

	case Image:
		if n.Alt != "" {
			return "Here is an image. It is described as: " + n.Alt
		}
		return "Here is an image. No description is available."

	case Link:
		return "Link: " + n.Text + ". Press " + activateKeyName + " to follow it."

	case Button:
		return "Button: " + n.Text + ". Press " + activateKeyName + " to press it."

	case Table:
		if n.Caption != "" {
			return "A table was found, captioned: " + n.Caption + ". Press " + tableKeyName + " to explore it."
		}
		return "A table was found. Press " + tableKeyName + " to explore it."

	default:
		return ""
	}
}

// DescribeCell is the spoken form of a cell during table navigation.
func (n *Node) DescribeCell() string {
	if n.Header {
		return "Column header: " + n.Text
	}
	return "Table cell: " + n.Text
}
