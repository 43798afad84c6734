package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTOMLRoundTrip(t *testing.T) {
	// The generated starter file must decode back to the defaults.
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(DefaultTOML()), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadFromTOML(path)
	if err != nil {
		t.Fatalf("loadFromTOML: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("decoded = %+v, want %+v", cfg, want)
	}
}

func TestMergeOverridesOnlySetValues(t *testing.T) {
	user := &Config{}
	user.Speech.Voice = "de"
	user.Fetcher.TimeoutSeconds = 5
	user.Keybindings.Advance = "n"

	got := merge(Default(), user)

	if got.Speech.Voice != "de" {
		t.Errorf("voice = %q, want de", got.Speech.Voice)
	}
	if got.Speech.WordsPerM != 170 {
		t.Errorf("wordsPerM = %d, want the default 170", got.Speech.WordsPerM)
	}
	if got.Fetcher.TimeoutSeconds != 5 {
		t.Errorf("timeout = %d, want 5", got.Fetcher.TimeoutSeconds)
	}
	if got.Keybindings.Advance != "n" {
		t.Errorf("advance = %q, want n", got.Keybindings.Advance)
	}
	if got.Keybindings.Quit != "q" {
		t.Errorf("quit = %q, want the default q", got.Keybindings.Quit)
	}
}

func TestMergeEmptyUserKeepsDefaults(t *testing.T) {
	got := merge(Default(), &Config{})
	if *got != *Default() {
		t.Errorf("merge with empty user config changed defaults: %+v", got)
	}
}
