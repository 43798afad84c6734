package speech

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// speakerRate is the fixed output sample rate; utterances are resampled
// from whatever the synthesizer produced.
const speakerRate = beep.SampleRate(44100)

var speakerInit sync.Once

// EngineConfig configures the synthesizer subprocess.
type EngineConfig struct {
	Binary         string // path to espeak-ng/espeak; empty = search PATH
	Voice          string // e.g. "en-us"
	WordsPerMinute int    // base speed before the rate multiplier
}

// DefaultEngineConfig returns sensible synthesis defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Voice: "en-us", WordsPerMinute: 175}
}

// EspeakEngine synthesizes utterances with espeak-ng and plays the
// resulting WAV through the speaker. The rate multiplier is applied as a
// words-per-minute adjustment at synthesis time, so speed changes do not
// shift pitch.
type EspeakEngine struct {
	binary string
	voice  string
	wpm    int

	mu   sync.Mutex
	gen  uint64 // bumped by Cancel to invalidate in-flight synthesis
	ctrl *beep.Ctrl
}

// NewEspeakEngine locates the synthesizer and initializes the speaker.
// An error here means no voice backend exists; callers fall back to the
// silent engine rather than failing the session.
func NewEspeakEngine(cfg EngineConfig) (*EspeakEngine, error) {
	binary := cfg.Binary
	if binary == "" {
		for _, candidate := range []string{"espeak-ng", "espeak"} {
			if path, err := exec.LookPath(candidate); err == nil {
				binary = path
				break
			}
		}
	}
	if binary == "" {
		return nil, fmt.Errorf("no espeak binary found on PATH")
	}

	var initErr error
	speakerInit.Do(func() {
		initErr = speaker.Init(speakerRate, speakerRate.N(time.Millisecond*100))
	})
	if initErr != nil {
		return nil, fmt.Errorf("initializing speaker: %w", initErr)
	}

	wpm := cfg.WordsPerMinute
	if wpm <= 0 {
		wpm = 175
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "en-us"
	}
	return &EspeakEngine{binary: binary, voice: voice, wpm: wpm}, nil
}

// Speak synthesizes and plays one utterance. Synthesis runs off the
// session goroutine; a Cancel issued meanwhile discards the result.
func (e *EspeakEngine) Speak(u Utterance, started, done func()) {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	go func() {
		wpm := int(float64(e.wpm) * u.Rate)
		// espeak accepts 80..450 words per minute
		if wpm < 80 {
			wpm = 80
		}
		if wpm > 450 {
			wpm = 450
		}

		cmd := exec.Command(e.binary, "--stdout", "-v", e.voice, "-s", fmt.Sprint(wpm), u.Text)
		out, err := cmd.Output()
		if err != nil || len(out) == 0 {
			// Synthesis failures are absorbed: report the utterance as
			// spoken so navigation keeps flowing.
			started()
			done()
			return
		}

		streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(out)))
		if err != nil {
			started()
			done()
			return
		}

		var playback beep.Streamer = streamer
		if format.SampleRate != speakerRate {
			playback = beep.Resample(4, format.SampleRate, speakerRate, streamer)
		}
		ctrl := &beep.Ctrl{Streamer: beep.Seq(playback, beep.Callback(done))}

		e.mu.Lock()
		if e.gen != gen {
			// Cancelled while synthesizing.
			e.mu.Unlock()
			return
		}
		e.ctrl = ctrl
		e.mu.Unlock()

		speaker.Clear()
		speaker.Play(ctrl)
		started()
	}()
}

// Cancel discards the in-flight utterance and invalidates any synthesis
// still running.
func (e *EspeakEngine) Cancel() {
	e.mu.Lock()
	e.gen++
	e.ctrl = nil
	e.mu.Unlock()
	speaker.Clear()
}

// Pause suspends playback mid-utterance.
func (e *EspeakEngine) Pause() {
	e.setPaused(true)
}

// Resume continues suspended playback.
func (e *EspeakEngine) Resume() {
	e.setPaused(false)
}

func (e *EspeakEngine) setPaused(paused bool) {
	e.mu.Lock()
	ctrl := e.ctrl
	e.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Close stops playback. The speaker itself has no teardown beyond
// clearing its streamers.
func (e *EspeakEngine) Close() {
	e.Cancel()
}
