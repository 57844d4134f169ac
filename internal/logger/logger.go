package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init and discards
// everything until then.
var Log = discard()

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT
// ("json" or text) and writes to stdout. Call it once from main.
func Init() {
	InitTo(os.Stdout)
}

// InitTo is Init with an explicit destination. The terminal frontend uses it
// to keep log lines off the screen it draws on.
func InitTo(w io.Writer) {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   w == os.Stdout,
		})
	}
	Log.SetOutput(w)
}

// Component returns an entry tagged with the subsystem name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
