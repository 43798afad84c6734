// Package keybind maps keys to actions per mode and produces the
// spoken-friendly help enumeration for the current mode's bindings.
package keybind

import (
	"strings"

	"outloud/mode"
)

// Binding associates a key with a description and an action.
type Binding struct {
	Key         string
	Description string
	Action      func()
}

// Registry holds the per-mode keybind tables. It is built once at session
// start; registering the same (mode, key) pair again overwrites the
// earlier binding.
type Registry struct {
	tables map[mode.Mode]map[string]Binding
	order  map[mode.Mode][]string // registration order, for display and help
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[mode.Mode]map[string]Binding),
		order:  make(map[mode.Mode][]string),
	}
}

// Register associates an action and description with (m, key).
// Last registration wins.
func (r *Registry) Register(m mode.Mode, key, description string, action func()) {
	table, ok := r.tables[m]
	if !ok {
		table = make(map[string]Binding)
		r.tables[m] = table
	}
	if _, exists := table[key]; !exists {
		r.order[m] = append(r.order[m], key)
	}
	table[key] = Binding{Key: key, Description: description, Action: action}
}

// Dispatch invokes the action bound to (m, key). It reports whether a
// binding existed; a true return means the caller should treat the key as
// consumed and suppress any default behavior.
func (r *Registry) Dispatch(m mode.Mode, key string) bool {
	b, ok := r.tables[m][key]
	if !ok {
		return false
	}
	b.Action()
	return true
}

// Bindings returns the bindings for a mode in registration order.
// The on-screen control renderer draws one control per entry.
func (r *Registry) Bindings(m mode.Mode) []Binding {
	keys := r.order[m]
	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.tables[m][k])
	}
	return out
}

// pronunciations fixes keys whose literal names read poorly when spoken.
// Bare letters take a trailing period so the synthesizer says the letter
// instead of reading "a" as the article.
var pronunciations = map[string]string{
	"enter":     "Enter",
	"escape":    "Escape",
	"space":     "the space bar",
	"backspace": "Backspace",
	"up":        "the up arrow",
	"down":      "the down arrow",
	"left":      "the left arrow",
	"right":     "the right arrow",
	"?":         "the question mark",
	"+":         "the plus key",
	"-":         "the minus key",
}

// SpokenKey returns the pronunciation for a key identity.
func SpokenKey(key string) string {
	if spoken, ok := pronunciations[key]; ok {
		return spoken
	}
	if len(key) == 1 {
		return strings.ToUpper(key) + "."
	}
	return key
}

// HelpString builds the spoken enumeration of every binding in a mode:
// one "Press <key> to <description>." sentence per binding.
func (r *Registry) HelpString(m mode.Mode) string {
	var sb strings.Builder
	for _, b := range r.Bindings(m) {
		sb.WriteString("Press ")
		sb.WriteString(SpokenKey(b.Key))
		sb.WriteString(" to ")
		sb.WriteString(lowerFirst(b.Description))
		if !strings.HasSuffix(b.Description, ".") {
			sb.WriteString(".")
		}
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
