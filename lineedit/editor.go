// Package lineedit is the single-line editor behind the URL prompt.
package lineedit

// Editor holds a line of text and a cursor. Positions are rune indices.
type Editor struct {
	text   []rune
	cursor int
}

// New creates an empty editor.
func New() *Editor {
	return &Editor{}
}

// Text returns the current line.
func (e *Editor) Text() string {
	return string(e.text)
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Set replaces the line and puts the cursor at its end.
func (e *Editor) Set(text string) {
	e.text = []rune(text)
	e.cursor = len(e.text)
}

// Clear empties the line.
func (e *Editor) Clear() {
	e.text = e.text[:0]
	e.cursor = 0
}

// Insert places a rune at the cursor and advances past it.
func (e *Editor) Insert(ch rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = ch
	e.cursor++
}

// DeleteBackward removes the rune before the cursor. It reports whether
// anything was deleted.
func (e *Editor) DeleteBackward() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
	return true
}

// Left moves the cursor one rune left, reporting whether it moved.
func (e *Editor) Left() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// Right moves the cursor one rune right, reporting whether it moved.
func (e *Editor) Right() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.cursor++
	return true
}

// Home moves the cursor to the start of the line.
func (e *Editor) Home() {
	e.cursor = 0
}

// End moves the cursor past the last rune.
func (e *Editor) End() {
	e.cursor = len(e.text)
}

// BeforeCursor returns the text left of the cursor, for rendering.
func (e *Editor) BeforeCursor() string {
	return string(e.text[:e.cursor])
}

// AfterCursor returns the text at and right of the cursor.
func (e *Editor) AfterCursor() string {
	return string(e.text[e.cursor:])
}
