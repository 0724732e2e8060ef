// Package output provides terminal output and descriptor writing for the
// kforge CLI.
package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// logPrefix marks kforge lines inside surrounding build output.
const logPrefix = "kforge"

// Logger is the global logger instance. Log lines go to stderr so that
// stdout stays reserved for descriptors and summaries.
var Logger *log.Logger

func init() {
	Logger = newLogger(log.InfoLevel, false)
}

// SetupLogging configures the logger. Verbose forces debug level and turns
// on timestamps and caller reporting; otherwise KFORGE_LOG picks the level,
// defaulting to info.
func SetupLogging(verbose bool) {
	level := levelFromEnv()
	if verbose {
		level = log.DebugLevel
	}
	Logger = newLogger(level, verbose)
}

func newLogger(level log.Level, verbose bool) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          logPrefix,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
}

// levelFromEnv maps KFORGE_LOG onto a log level. Unknown or empty values
// fall back to info.
func levelFromEnv() log.Level {
	switch strings.ToLower(os.Getenv("KFORGE_LOG")) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Print prints a message to stdout without any formatting.
func Print(msg string) {
	os.Stdout.WriteString(msg)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	os.Stdout.WriteString(msg + "\n")
}
