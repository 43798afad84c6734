// Package config provides configuration loading for Outloud using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Speech synthesis settings.
type Speech struct {
	Binary    string `json:"binary"`    // synthesizer executable (empty = auto-detect)
	Voice     string `json:"voice"`     // synthesizer voice name
	WordsPerM int    `json:"wordsPerM"` // base words per minute at rate 1.0
}

// HTTP fetching settings.
type Fetcher struct {
	UserAgent      string `json:"userAgent"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	ChromePath     string `json:"chromePath"`
	CacheMinutes   int    `json:"cacheMinutes"` // page cache TTL; 0 disables caching
}

// Keybindings configuration. Each entry rebinds one command; arrow keys,
// Enter and Escape are fixed.
type Keybindings struct {
	Advance     string `json:"advance"`
	Retreat     string `json:"retreat"`
	Repeat      string `json:"repeat"`
	Activate    string `json:"activate"`
	Table       string `json:"table"`
	PauseResume string `json:"pauseResume"`
	RateUp      string `json:"rateUp"`
	RateDown    string `json:"rateDown"`
	OpenUrl     string `json:"openUrl"`
	Help        string `json:"help"`
	Quit        string `json:"quit"`
}

// Config is the main configuration struct.
type Config struct {
	Speech      Speech      `json:"speech"`
	Fetcher     Fetcher     `json:"fetcher"`
	Keybindings Keybindings `json:"keybindings"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Speech: Speech{
			Binary:    "",
			Voice:     "en",
			WordsPerM: 170,
		},
		Fetcher: Fetcher{
			UserAgent:      "Outloud/1.0 (Terminal Screen Reader)",
			TimeoutSeconds: 30,
			ChromePath:     "",
			CacheMinutes:   15,
		},
		Keybindings: Keybindings{
			Advance:     "j",
			Retreat:     "k",
			Repeat:      "r",
			Activate:    "enter",
			Table:       "t",
			PauseResume: "p",
			RateUp:      "+",
			RateDown:    "-",
			OpenUrl:     "o",
			Help:        "?",
			Quit:        "q",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "outloud"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	return merge(cfg, userCfg), nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	if user.Speech.Binary != "" {
		result.Speech.Binary = user.Speech.Binary
	}
	if user.Speech.Voice != "" {
		result.Speech.Voice = user.Speech.Voice
	}
	if user.Speech.WordsPerM != 0 {
		result.Speech.WordsPerM = user.Speech.WordsPerM
	}

	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	if user.Fetcher.CacheMinutes != 0 {
		result.Fetcher.CacheMinutes = user.Fetcher.CacheMinutes
	}

	mergeKeybinding(&result.Keybindings.Advance, user.Keybindings.Advance)
	mergeKeybinding(&result.Keybindings.Retreat, user.Keybindings.Retreat)
	mergeKeybinding(&result.Keybindings.Repeat, user.Keybindings.Repeat)
	mergeKeybinding(&result.Keybindings.Activate, user.Keybindings.Activate)
	mergeKeybinding(&result.Keybindings.Table, user.Keybindings.Table)
	mergeKeybinding(&result.Keybindings.PauseResume, user.Keybindings.PauseResume)
	mergeKeybinding(&result.Keybindings.RateUp, user.Keybindings.RateUp)
	mergeKeybinding(&result.Keybindings.RateDown, user.Keybindings.RateDown)
	mergeKeybinding(&result.Keybindings.OpenUrl, user.Keybindings.OpenUrl)
	mergeKeybinding(&result.Keybindings.Help, user.Keybindings.Help)
	mergeKeybinding(&result.Keybindings.Quit, user.Keybindings.Quit)

	return &result
}

func mergeKeybinding(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# Outloud configuration
# Save to ~/.config/outloud/config.toml and customize
# Only include settings you want to change from defaults

# Speech synthesis settings
[speech]
binary = ""                   # Synthesizer executable (empty = auto-detect espeak-ng)
voice = "en"                  # Synthesizer voice
wordsPerM = 170               # Base words per minute at normal speed

# HTTP fetching settings
[fetcher]
userAgent = "Outloud/1.0 (Terminal Screen Reader)"
timeoutSeconds = 30
chromePath = ""               # Path to Chrome/Chromium for JS rendering (empty = auto-detect)
cacheMinutes = 15             # Page cache lifetime; 0 disables the cache

# Keybindings - customize your keys here!
# Arrow keys, Enter and Escape are fixed.
[keybindings]
advance = "j"                 # Read the next item
retreat = "k"                 # Read the previous item
repeat = "r"                  # Repeat the current item
activate = "enter"            # Follow a link / press a button
table = "t"                   # Enter or leave a table
pauseResume = "p"
rateUp = "+"
rateDown = "-"
openUrl = "o"
help = "?"
quit = "q"
`
}
