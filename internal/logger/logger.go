// Package logger is envwizard's single logrus instance. Everything goes to
// stderr; stdout is reserved for prompts, previews and command output.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LevelEnv names the variable that picks the starting level.
const LevelEnv = "LOG_LEVEL"

var (
	base *logrus.Logger
	once sync.Once
)

// Init builds the logger on first use. Later calls are no-ops.
func Init() {
	once.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		base.SetLevel(parseLevel(os.Getenv(LevelEnv)))
	})
}

// parseLevel accepts any logrus level name in any case. Anything else,
// including an empty string, means info.
func parseLevel(raw string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func get() *logrus.Logger {
	Init()
	return base
}

// SetOutput sends log lines to w. Tests pass io.Discard.
func SetOutput(w io.Writer) {
	get().SetOutput(w)
}

// SetLevel replaces the level read from LOG_LEVEL.
func SetLevel(raw string) {
	get().SetLevel(parseLevel(raw))
}

// StdLogger adapts the logger for code that takes a *log.Logger, such as
// the backup manager. Its lines are logged at debug level.
func StdLogger() *log.Logger {
	return log.New(get().WriterLevel(logrus.DebugLevel), "", 0)
}

// emit writes "<component> -> <method>: <message>" at level.
func emit(level logrus.Level, component, method, message string) {
	get().Logf(level, "%s -> %s: %s", component, method, message)
}

func Debugf(component, method, format string, args ...interface{}) {
	emit(logrus.DebugLevel, component, method, fmt.Sprintf(format, args...))
}

func Infof(component, method, format string, args ...interface{}) {
	emit(logrus.InfoLevel, component, method, fmt.Sprintf(format, args...))
}

func Warnf(component, method, format string, args ...interface{}) {
	emit(logrus.WarnLevel, component, method, fmt.Sprintf(format, args...))
}

// Error logs err at error level. A nil err is logged as "unknown error".
func Error(component, method string, err error) {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	emit(logrus.ErrorLevel, component, method, message)
}
