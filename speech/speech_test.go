package speech

import (
	"math"
	"testing"
)

// drain pumps queued engine events through Deliver.
func drain(p *Proxy) {
	for {
		select {
		case ev := <-p.Events():
			p.Deliver(ev)
		default:
			return
		}
	}
}

func TestSpeakFiresCallbacks(t *testing.T) {
	p := New(NewNullEngine(0))
	var startedText, endedText string
	p.Speak("hello", func() { startedText = "hello" }, func() { endedText = "hello" })
	drain(p)

	if startedText != "hello" {
		t.Error("onStart did not fire")
	}
	if endedText != "hello" {
		t.Error("onEnd did not fire")
	}
	if p.Speaking() {
		t.Error("still speaking after natural end")
	}
}

func TestSpeakCancelsPriorUtterance(t *testing.T) {
	p := New(NewNullEngine(0))
	aEnded := false
	bEnded := false
	p.Speak("A", nil, func() { aEnded = true })
	p.Speak("B", nil, func() { bEnded = true })
	drain(p)

	if aEnded {
		t.Error("cancelled utterance's onEnd fired")
	}
	if !bEnded {
		t.Error("replacement utterance's onEnd did not fire")
	}
}

func TestStopSwallowsOnEnd(t *testing.T) {
	p := New(NewNullEngine(0))
	ended := false
	p.Speak("going away", nil, func() { ended = true })
	p.Stop()
	drain(p)

	if ended {
		t.Error("onEnd fired after Stop")
	}
	if p.Speaking() {
		t.Error("Speaking() true after Stop")
	}
}

func TestRateClampUnderRepeatedIncrease(t *testing.T) {
	p := New(NewNullEngine(0))
	for i := 0; i < 50; i++ {
		p.Increase()
	}
	if p.Rate() != MaxRate {
		t.Errorf("rate after 50 increases = %v, want exactly %v", p.Rate(), MaxRate)
	}

	for i := 0; i < 100; i++ {
		p.Decrease()
	}
	if p.Rate() != MinRate {
		t.Errorf("rate after 100 decreases = %v, want exactly %v", p.Rate(), MinRate)
	}
}

func TestChangeRateStaysInBounds(t *testing.T) {
	p := New(NewNullEngine(0))
	factors := []float64{3.0, 3.0, 0.01, 0.5, 100, 1.0, 0.9, 1.1}
	for _, f := range factors {
		p.ChangeRate(f)
		if p.Rate() < MinRate || p.Rate() > MaxRate {
			t.Fatalf("rate %v escaped [%v, %v] after factor %v", p.Rate(), MinRate, MaxRate, f)
		}
	}
}

func TestRateSequenceIsDeterministic(t *testing.T) {
	p := New(NewNullEngine(0))
	p.Increase()
	p.Increase()
	p.Decrease()
	want := 1.0 * 1.1 * 1.1 * 0.9
	if math.Abs(p.Rate()-want) > 1e-12 {
		t.Errorf("rate = %v, want %v", p.Rate(), want)
	}
}

// recordingEngine counts engine calls for idempotence checks.
type recordingEngine struct {
	pauses  int
	resumes int
	cancels int
}

func (r *recordingEngine) Speak(u Utterance, started, done func()) { started(); done() }
func (r *recordingEngine) Cancel()                                 { r.cancels++ }
func (r *recordingEngine) Pause()                                  { r.pauses++ }
func (r *recordingEngine) Resume()                                 { r.resumes++ }
func (r *recordingEngine) Close()                                  {}

func TestPauseResumeIdempotent(t *testing.T) {
	engine := &recordingEngine{}
	p := New(engine)
	p.Speak("held", nil, nil)

	p.Pause()
	p.Pause()
	p.Pause()
	if engine.pauses != 1 {
		t.Errorf("engine paused %d times, want 1", engine.pauses)
	}
	if !p.paused {
		t.Error("not marked paused")
	}

	p.Resume()
	p.Resume()
	if engine.resumes != 1 {
		t.Errorf("engine resumed %d times, want 1", engine.resumes)
	}

	// Resume without a matching pause is a no-op.
	p.Resume()
	if engine.resumes != 1 {
		t.Errorf("unmatched resume reached the engine")
	}
}

func TestSpeakWhilePausedResumesEngine(t *testing.T) {
	engine := &recordingEngine{}
	p := New(engine)
	p.Speak("first", nil, nil)
	p.Pause()
	p.Speak("audible again", nil, nil)
	if p.paused {
		t.Error("new utterance left the proxy paused")
	}
	if engine.resumes != 1 {
		t.Errorf("engine resumed %d times, want 1", engine.resumes)
	}
}

func TestPauseWithNothingInFlightIsNoop(t *testing.T) {
	engine := &recordingEngine{}
	p := New(engine)
	p.Pause()
	if engine.pauses != 0 {
		t.Errorf("engine paused %d times, want 0", engine.pauses)
	}
	if p.paused {
		t.Error("idle proxy marked paused")
	}
}

func TestStaleEventsAreDropped(t *testing.T) {
	p := New(NewNullEngine(0))
	count := 0
	p.Speak("one", nil, func() { count++ })
	drain(p)
	// Replay a stale event; the utterance already completed.
	p.Deliver(Event{Kind: Ended, ID: 1})
	if count != 1 {
		t.Errorf("onEnd fired %d times, want 1", count)
	}
}
