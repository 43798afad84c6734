package speech

import (
	"strings"
	"sync"
	"time"
)

// NullEngine is the silent fallback used when no voice backend exists.
// It completes utterances on a timer proportional to their word count so
// continuous reading keeps its pacing, or immediately when the delay is
// zero (tests drive it this way for determinism).
type NullEngine struct {
	perWord time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewNullEngine creates a silent engine with the given per-word delay.
func NewNullEngine(perWord time.Duration) *NullEngine {
	return &NullEngine{perWord: perWord}
}

// Speak pretends to play the utterance.
func (e *NullEngine) Speak(u Utterance, started, done func()) {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	started()
	if e.perWord <= 0 {
		done()
		return
	}

	words := len(strings.Fields(u.Text))
	if words == 0 {
		words = 1
	}
	rate := u.Rate
	if rate <= 0 {
		rate = 1.0
	}
	duration := time.Duration(float64(words) * float64(e.perWord) / rate)

	e.mu.Lock()
	e.timer = time.AfterFunc(duration, func() {
		e.mu.Lock()
		current := e.gen == gen
		e.mu.Unlock()
		if current {
			done()
		}
	})
	e.mu.Unlock()
}

// Cancel discards the pending completion.
func (e *NullEngine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// Pause is a no-op; there is no audio to suspend.
func (e *NullEngine) Pause() {}

// Resume is a no-op.
func (e *NullEngine) Resume() {}

// Close is a no-op.
func (e *NullEngine) Close() {}

// Detect returns the best available engine: espeak playback when a
// synthesizer and audio device exist, otherwise the silent engine.
// Engine-level failures never surface to the caller.
func Detect(cfg EngineConfig) Engine {
	if engine, err := NewEspeakEngine(cfg); err == nil {
		return engine
	}
	return NewNullEngine(250 * time.Millisecond)
}
