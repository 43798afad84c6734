// Package speech serializes narration requests to a single voice engine.
// The proxy owns pause/resume and speaking-rate state; issuing a new
// utterance always cancels the one in flight.
package speech

import "strconv"

// Rate multiplier bounds. Repeated adjustment clamps here rather than
// compounding past them.
const (
	MinRate = 0.25
	MaxRate = 4.0
)

// EventKind distinguishes the voice engine's callbacks.
type EventKind int

const (
	// Started means the engine began producing audio for an utterance.
	Started EventKind = iota
	// Ended means an utterance finished naturally.
	Ended
)

// Event is a voice-engine callback, delivered on the proxy's event
// channel so the session can process it on its own goroutine.
type Event struct {
	Kind EventKind
	ID   uint64
}

// Utterance is one discrete unit of speech submitted to the engine.
type Utterance struct {
	ID   uint64
	Text string
	Rate float64
}

// Engine is the external voice synthesizer. Implementations report
// progress through the started and done callbacks, which may run on any
// goroutine; the proxy routes them through its event channel.
type Engine interface {
	// Speak submits an utterance. The engine must have been cancelled
	// first; the proxy guarantees at most one utterance is in flight.
	Speak(u Utterance, started, done func())
	// Cancel discards the in-flight utterance, if any.
	Cancel()
	// Pause suspends playback mid-utterance.
	Pause()
	// Resume continues suspended playback.
	Resume()
	// Close releases the engine.
	Close()
}

type pending struct {
	id      uint64
	onStart func()
	onEnd   func()
}

// Proxy is the sole adapter in front of the voice engine. One instance
// exists per session; construction cancels anything a prior session left
// playing. All methods must be called from the session goroutine.
type Proxy struct {
	engine   Engine
	events   chan Event
	rate     float64
	paused   bool // engine suspended mid-utterance; distinct from the Paused mode
	speaking bool
	current  *pending
	nextID   uint64
}

// New creates the proxy for a session.
func New(engine Engine) *Proxy {
	engine.Cancel()
	return &Proxy{
		engine: engine,
		events: make(chan Event, 16),
		rate:   1.0,
	}
}

// Events exposes the engine's callbacks for the session's event loop.
// Each received event must be passed to Deliver.
func (p *Proxy) Events() <-chan Event {
	return p.events
}

// Speak cancels any utterance in flight and submits text at the current
// rate. onStart fires when the engine begins producing audio, onEnd when
// the utterance finishes naturally; neither fires for an utterance that
// gets cancelled by a later Speak or Stop. Either callback may be nil.
func (p *Proxy) Speak(text string, onStart, onEnd func()) {
	p.engine.Cancel()
	if p.paused {
		// A fresh utterance always starts audible.
		p.engine.Resume()
		p.paused = false
	}

	p.nextID++
	id := p.nextID
	p.current = &pending{id: id, onStart: onStart, onEnd: onEnd}
	p.speaking = true

	p.engine.Speak(Utterance{ID: id, Text: text, Rate: p.rate},
		func() { p.events <- Event{Kind: Started, ID: id} },
		func() { p.events <- Event{Kind: Ended, ID: id} })
}

// Deliver processes an engine event on the caller's goroutine, invoking
// the matching utterance's callbacks. Events from utterances that have
// since been cancelled are dropped.
func (p *Proxy) Deliver(ev Event) {
	if p.current == nil || p.current.id != ev.ID {
		return
	}
	switch ev.Kind {
	case Started:
		if p.current.onStart != nil {
			p.current.onStart()
		}
	case Ended:
		onEnd := p.current.onEnd
		p.current = nil
		p.speaking = false
		if onEnd != nil {
			onEnd()
		}
	}
}

// Pause suspends the engine mid-utterance. Pausing when already paused,
// or when nothing is in flight, is a no-op.
func (p *Proxy) Pause() {
	if p.paused || !p.speaking {
		return
	}
	p.paused = true
	p.engine.Pause()
}

// Resume continues suspended playback. Resuming when not paused is a
// no-op.
func (p *Proxy) Resume() {
	if !p.paused {
		return
	}
	p.paused = false
	p.engine.Resume()
}

// Stop hard-cancels the in-flight utterance. It cannot be resumed and its
// onEnd never fires.
func (p *Proxy) Stop() {
	p.engine.Cancel()
	p.current = nil
	p.speaking = false
}

// ChangeRate multiplies the speaking rate by factor, clamped to
// [MinRate, MaxRate]. The new rate applies from the next utterance.
func (p *Proxy) ChangeRate(factor float64) {
	p.rate *= factor
	if p.rate < MinRate {
		p.rate = MinRate
	}
	if p.rate > MaxRate {
		p.rate = MaxRate
	}
}

// Increase speeds narration up one step.
func (p *Proxy) Increase() { p.ChangeRate(1.1) }

// Decrease slows narration down one step.
func (p *Proxy) Decrease() { p.ChangeRate(0.9) }

// Rate returns the current rate multiplier.
func (p *Proxy) Rate() float64 { return p.rate }

// Speaking reports whether an utterance is in flight (even if paused).
func (p *Proxy) Speaking() bool { return p.speaking }

// FormatRate renders a rate multiplier for narration and the status bar,
// e.g. "1.21 times normal speed".
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64) + " times normal speed"
}

// Close stops narration and releases the engine.
func (p *Proxy) Close() {
	p.Stop()
	p.engine.Close()
}
