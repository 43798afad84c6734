// Package mode defines the operating modes of a reading session and the
// stack that tracks which one is current.
package mode

// Mode represents the current operating mode.
type Mode int

const (
	// Normal is the default mode: linear reading and navigation.
	Normal Mode = iota
	// Edit is for free-text entry (the URL prompt).
	Edit
	// Table is structured two-dimensional navigation inside a table.
	Table
	// Paused means narration is suspended; most keys are inert.
	Paused
)

// String returns the human-readable mode name, as spoken by help.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Edit:
		return "Edit"
	case Table:
		return "Table"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Stack is a non-empty stack of modes. The top entry is the current mode.
// A session always has a current mode, so popping the last entry returns
// it without removing it.
type Stack struct {
	modes []Mode
}

// NewStack creates a stack with the given base entries, bottom first.
// With no arguments the stack holds Normal.
func NewStack(modes ...Mode) *Stack {
	if len(modes) == 0 {
		modes = []Mode{Normal}
	}
	s := &Stack{modes: make([]Mode, len(modes))}
	copy(s.modes, modes)
	return s
}

// Push enters a mode, preserving the previous one beneath it.
func (s *Stack) Push(m Mode) {
	s.modes = append(s.modes, m)
}

// Pop removes and returns the top mode. If only one entry remains it is
// returned without being removed.
func (s *Stack) Pop() Mode {
	top := s.modes[len(s.modes)-1]
	if len(s.modes) > 1 {
		s.modes = s.modes[:len(s.modes)-1]
	}
	return top
}

// Peek returns the current mode without mutating the stack.
func (s *Stack) Peek() Mode {
	return s.modes[len(s.modes)-1]
}

// Depth returns the number of entries on the stack.
func (s *Stack) Depth() int {
	return len(s.modes)
}
