package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultLogDir is the directory under $HOME for the log file
	DefaultLogDir = ".local/state/danke"
	// DefaultLogFile is the log file name
	DefaultLogFile = "danke.log"
)

var (
	// Logger discards everything until Init succeeds
	Logger  = zerolog.Nop()
	logFile *os.File
	level   = zerolog.InfoLevel
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// DefaultLogPath returns the log file path under the user's home directory
func DefaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultLogDir, DefaultLogFile)
}

// Init opens the log file at path (the default path when empty) and tags
// every event with a fresh run id. On failure the logger stays disabled.
func Init(path string) error {
	if path == "" {
		path = DefaultLogPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	zerolog.MessageFieldName = "msg"

	Logger = zerolog.New(logFile).
		Level(level).
		With().
		Str("run", uuid.New().String()).
		Logger().
		Hook(timestampHook{})

	return nil
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = zerolog.Nop()
}

// SetLevel changes the minimum level of emitted events
func SetLevel(l zerolog.Level) {
	level = l
	Logger = Logger.Level(l)
}

// ParseLevel parses a config level name, empty meaning info
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(name)
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
