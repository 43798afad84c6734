// Package logging configures the process-wide logger. The terminal is
// the user interface, so log output goes to a file instead of stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Path returns the per-user log file location.
func Path() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "outloud", "outloud.log")
}

// Setup routes logrus output to the log file. With debug on, the level
// drops to Debug. When the file cannot be opened, logging is discarded
// rather than corrupting the terminal.
func Setup(debug bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetOutput(f)
}
