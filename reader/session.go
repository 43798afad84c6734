package reader

import (
	"outloud/html"
	"outloud/keybind"
	"outloud/lineedit"
	"outloud/mode"
	"outloud/speech"
)

// Session is the state machine at the centre of a reading session. It owns
// the mode stack, the keybind tables, and the two navigators, and routes
// every keystroke to whichever of them the current mode selects. All of
// its methods run on the event-loop goroutine; speech callbacks come back
// through speech.Proxy.Deliver on the same goroutine, so there is no
// locking here.
type Session struct {
	stack *mode.Stack
	keys  *keybind.Registry
	voice *speech.Proxy

	tree     *html.Tree
	nav      *Navigator
	tableNav *TableNav
	editor   *lineedit.Editor

	// OnNavigate is called when a link is activated or a URL submitted
	// from the prompt. OnModeChange fires after every push or pop, for
	// redraws.
	OnNavigate   func(url string)
	OnModeChange func()

	bindings Keys
	location string
	done     bool
}

// Keys holds the key bound to each rebindable command. Arrow keys,
// Enter and Escape are fixed.
type Keys struct {
	Advance     string
	Retreat     string
	Repeat      string
	Activate    string
	Table       string
	PauseResume string
	RateUp      string
	RateDown    string
	OpenURL     string
	Help        string
	Quit        string
}

// DefaultKeys returns the stock layout.
func DefaultKeys() Keys {
	return Keys{
		Advance:     "j",
		Retreat:     "k",
		Repeat:      "r",
		Activate:    "enter",
		Table:       "t",
		PauseResume: "p",
		RateUp:      "+",
		RateDown:    "-",
		OpenURL:     "o",
		Help:        "?",
		Quit:        "q",
	}
}

// NewSession builds a session over a voice proxy. Reading starts paused:
// the stack is seeded [Normal, Paused] so the first narrated unit waits
// for an explicit resume.
func NewSession(voice *speech.Proxy, keys Keys) *Session {
	s := &Session{
		stack:    mode.NewStack(mode.Normal, mode.Paused),
		keys:     keybind.NewRegistry(),
		voice:    voice,
		editor:   lineedit.New(),
		bindings: keys,
	}
	s.register(keys)
	return s
}

// SetLocation records the address of the current page. The URL prompt
// opens prefilled with it so the address can be edited in place.
func (s *Session) SetLocation(url string) {
	s.location = url
}

// SetDocument points the session at a freshly parsed content tree and
// resets the cursor to the start of the document. The mode stack is
// rebuilt to its initial [Normal, Paused] shape.
func (s *Session) SetDocument(tree *html.Tree) {
	s.voice.Stop()
	s.tree = tree
	s.nav = NewNavigator(tree)
	s.tableNav = NewTableNav(tree)
	s.stack = mode.NewStack(mode.Normal, mode.Paused)
	s.modeChanged()
}

// Mode returns the active (top of stack) mode.
func (s *Session) Mode() mode.Mode {
	return s.stack.Peek()
}

// Keys exposes the registry so the renderer can draw the current mode's
// controls.
func (s *Session) Keys() *keybind.Registry {
	return s.keys
}

// Editor exposes the URL prompt's line editor for rendering.
func (s *Session) Editor() *lineedit.Editor {
	return s.editor
}

// TableNav exposes the table navigator for rendering the cell highlight.
func (s *Session) TableNav() *TableNav {
	return s.tableNav
}

// Done reports that the user asked to quit.
func (s *Session) Done() bool {
	return s.done
}

// HandleKey routes a decoded key through the active mode's bindings.
// Edit mode takes every key, bound or not, so typed text never triggers
// navigation underneath the prompt.
func (s *Session) HandleKey(key string) {
	m := s.stack.Peek()
	if m == mode.Edit {
		s.handleEditKey(key)
		return
	}
	s.keys.Dispatch(m, key)
}

// register builds the per-mode binding tables. Registration order is
// display order in the control bar.
func (s *Session) register(k Keys) {
	// Descriptions of links, buttons and tables name the key that acts
	// on them; keep them in step with rebinds.
	html.SetNarrationKeys(keybind.SpokenKey(k.Activate), keybind.SpokenKey(k.Table))

	s.keys.Register(mode.Normal, k.Advance, "Read the next item", s.Advance)
	s.keys.Register(mode.Normal, k.Retreat, "Read the previous item", s.Retreat)
	s.keys.Register(mode.Normal, k.Repeat, "Repeat the current item", s.Repeat)
	s.keys.Register(mode.Normal, k.Activate, "Activate the current item", s.Activate)
	s.keys.Register(mode.Normal, k.Table, "Explore the current table", s.enterTable)
	s.keys.Register(mode.Normal, k.PauseResume, "Pause reading", s.pause)
	s.keys.Register(mode.Normal, k.RateUp, "Speak faster", s.faster)
	s.keys.Register(mode.Normal, k.RateDown, "Speak slower", s.slower)
	s.keys.Register(mode.Normal, k.OpenURL, "Open a URL", s.openPrompt)
	s.keys.Register(mode.Normal, k.Help, "Hear this help", s.help)
	s.keys.Register(mode.Normal, k.Quit, "Quit", s.quit)

	s.keys.Register(mode.Paused, k.PauseResume, "Resume reading", s.resume)
	s.keys.Register(mode.Paused, k.RateUp, "Speak faster", s.faster)
	s.keys.Register(mode.Paused, k.RateDown, "Speak slower", s.slower)
	s.keys.Register(mode.Paused, k.OpenURL, "Open a URL", s.openPrompt)
	s.keys.Register(mode.Paused, k.Help, "Hear this help", s.help)
	s.keys.Register(mode.Paused, k.Quit, "Quit", s.quit)

	s.keys.Register(mode.Table, "right", "Read the cell to the right", s.tableMove((*TableNav).MoveRight))
	s.keys.Register(mode.Table, "left", "Read the cell to the left", s.tableMove((*TableNav).MoveLeft))
	s.keys.Register(mode.Table, "down", "Read the cell below", s.tableMove((*TableNav).MoveDown))
	s.keys.Register(mode.Table, "up", "Read the cell above", s.tableMove((*TableNav).MoveUp))
	s.keys.Register(mode.Table, k.Repeat, "Repeat the current cell", s.repeatCell)
	s.keys.Register(mode.Table, k.PauseResume, "Pause reading", s.pause)
	s.keys.Register(mode.Table, k.Help, "Hear this help", s.help)
	// Quitting the application is not reachable from inside a table;
	// the quit key leaves the table instead.
	s.keys.Register(mode.Table, k.Quit, "Leave the table", s.exitTable)
	s.keys.Register(mode.Table, "escape", "Leave the table", s.exitTable)

	// Edit mode bindings exist for the control bar only; keys route
	// through handleEditKey.
	s.keys.Register(mode.Edit, "enter", "Go to the typed URL", func() {})
	s.keys.Register(mode.Edit, "escape", "Cancel", func() {})
}

// Begin starts narration: title first, then the first content unit once
// reading is resumed. Called after SetDocument when the page is ready.
func (s *Session) Begin() {
	if s.tree == nil {
		return
	}
	title := s.tree.Title
	if title == "" {
		title = "Untitled page"
	}
	s.voice.Speak(title+". Press "+keybind.SpokenKey(s.bindings.PauseResume)+
		" to start reading, or "+keybind.SpokenKey(s.bindings.Help)+" for help.", nil, nil)
}

// Advance narrates the next unit in reading order. When the utterance
// finishes with Normal mode still active, reading continues with the
// unit after it. The end of the document is silent; the cursor stays on
// the last unit.
func (s *Session) Advance() {
	node := s.nav.Next()
	if node == nil {
		return
	}
	s.narrate(node)
}

// Retreat narrates the previous unit. At the start of the document it
// does nothing, silently.
func (s *Session) Retreat() {
	node := s.nav.Prev()
	if node == nil {
		return
	}
	s.narrate(node)
}

// Repeat re-reads the current unit without moving. Before the first
// advance there is nothing to repeat and nothing is spoken.
func (s *Session) Repeat() {
	node := s.nav.Current()
	if node == nil {
		return
	}
	s.narrate(node)
}

// narrate speaks a unit's description and chains to the next one when
// continuous reading is on. The chain is cut by anything that replaces
// or stops the utterance, because the proxy then drops its end event.
func (s *Session) narrate(node *html.Node) {
	s.voice.Speak(node.Describe(), nil, func() {
		if s.stack.Peek() == mode.Normal {
			s.Advance()
		}
	})
}

// Activate acts on the focused unit: links navigate, buttons press.
// Anything else gets a short refusal.
func (s *Session) Activate() {
	node := s.nav.Current()
	if node == nil {
		return
	}
	switch node.Category {
	case html.Link:
		s.voice.Speak("Following the link: "+node.Text+".", nil, nil)
		if s.OnNavigate != nil {
			s.OnNavigate(node.Href)
		}
	case html.Button:
		s.voice.Speak("Pressed: "+node.Text+".", nil, nil)
	default:
		s.voice.Speak("This item cannot be activated.", nil, nil)
	}
}

// enterTable locks onto the table at or above the cursor and pushes
// Table mode. Refused entries leave the mode stack untouched.
func (s *Session) enterTable() {
	table := tableAt(s.nav.Current())
	if table == nil {
		s.voice.Speak("You are not on a table right now.", nil, nil)
		return
	}
	spoken, ok := s.tableNav.Enter(table)
	if !ok {
		s.voice.Speak(spoken, nil, nil)
		return
	}
	s.stack.Push(mode.Table)
	s.modeChanged()
	s.voice.Speak("Exploring the table. "+spoken, nil, nil)
}

// tableAt finds the table a node belongs to: the node itself when it is
// a table, otherwise its nearest table ancestor.
func tableAt(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	if node.Category == html.Table {
		return node
	}
	return node.TableAncestor()
}

// exitTable pops Table mode and resumes linear reading after the table.
func (s *Session) exitTable() {
	table := s.tableNav.Exit()
	s.stack.Pop()
	s.modeChanged()
	s.tree.Focus(table)
	s.voice.Speak("Leaving the table.", nil, func() {
		if s.stack.Peek() == mode.Normal {
			s.Advance()
		}
	})
}

// tableMove adapts a directional move into a keybind action.
func (s *Session) tableMove(move func(*TableNav) (string, bool)) func() {
	return func() {
		spoken, _ := move(s.tableNav)
		s.voice.Speak(spoken, nil, nil)
	}
}

func (s *Session) repeatCell() {
	s.voice.Speak(s.tableNav.Describe(), nil, nil)
}

// pause freezes the utterance in progress and pushes Paused. Keys bound
// in Paused mode are the only ones heard until resume.
func (s *Session) pause() {
	s.voice.Pause()
	s.stack.Push(mode.Paused)
	s.modeChanged()
}

// resume pops Paused and lets a frozen utterance continue. When nothing
// is in flight and Normal mode is revealed, reading starts from the
// next unit instead of dead air.
func (s *Session) resume() {
	s.stack.Pop()
	s.modeChanged()
	s.voice.Resume()
	if s.stack.Peek() == mode.Normal && !s.voice.Speaking() {
		s.Advance()
	}
}

// help interrupts narration and enumerates the active mode's bindings.
// The mode stack is untouched, so help is available everywhere without
// changing what the next key does.
func (s *Session) help() {
	m := s.stack.Peek()
	s.voice.Stop()
	s.voice.Speak("You are in "+m.String()+" mode. "+s.keys.HelpString(m), nil, nil)
}

// openPrompt pushes Edit mode with the URL line holding the current
// address, cursor at its end.
func (s *Session) openPrompt() {
	s.editor.Set(s.location)
	s.stack.Push(mode.Edit)
	s.modeChanged()
	if s.location != "" {
		s.voice.Speak("The address line holds "+s.location+
			". Edit it and press Enter, or press Escape to cancel.", nil, nil)
		return
	}
	s.voice.Speak("Type a URL and press Enter to open it, or Escape to cancel.", nil, nil)
}

// handleEditKey feeds keys to the URL prompt. Enter submits, Escape
// cancels; either way Edit mode is popped before anything else runs.
func (s *Session) handleEditKey(key string) {
	switch key {
	case "enter":
		url := s.editor.Text()
		s.stack.Pop()
		s.modeChanged()
		if url == "" {
			return
		}
		s.voice.Speak("Opening "+url+".", nil, nil)
		if s.OnNavigate != nil {
			s.OnNavigate(url)
		}
	case "escape":
		s.stack.Pop()
		s.modeChanged()
		s.voice.Speak("Cancelled.", nil, nil)
	case "backspace":
		s.editor.DeleteBackward()
	case "left":
		s.editor.Left()
	case "right":
		s.editor.Right()
	case "home":
		s.editor.Home()
	case "end":
		s.editor.End()
	case "space":
		s.editor.Insert(' ')
	default:
		if len(key) == 1 && key[0] >= ' ' && key[0] < 127 {
			s.editor.Insert(rune(key[0]))
		}
	}
}

func (s *Session) faster() {
	s.voice.Increase()
	s.announceRate()
}

func (s *Session) slower() {
	s.voice.Decrease()
	s.announceRate()
}

func (s *Session) announceRate() {
	s.voice.Speak("Speech rate "+speech.FormatRate(s.voice.Rate())+".", nil, nil)
}

func (s *Session) quit() {
	s.voice.Stop()
	s.done = true
}

func (s *Session) modeChanged() {
	if s.OnModeChange != nil {
		s.OnModeChange()
	}
}
