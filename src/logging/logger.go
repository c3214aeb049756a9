package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLevel parses and sets the global log level. Unknown names are ignored.
func SetLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// GetLevel returns the current global log level.
func GetLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects log output (tests, headless runs).
func SetOutput(w io.Writer) {
	baseLogger.SetOutput(w)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func logf(l Level, format string, args ...interface{}) {
	if GetLevel() > l {
		return
	}
	// Plain messages are printed verbatim so a literal % in a file name or cell value
	// does not turn into %!x(MISSING).
	if len(args) == 0 {
		baseLogger.Printf("[%s] %s", l, format)
		return
	}
	baseLogger.Printf("[%s] %s", l, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}

// Logger tags every message with a component name, e.g. "[session]".
type Logger struct {
	tag string
}

// Named returns a Logger for component.
func Named(component string) Logger { return Logger{tag: "[" + component + "] "} }

func (l Logger) Debugf(format string, a ...interface{}) { logf(LevelDebug, l.tag+format, a...) }
func (l Logger) Infof(format string, a ...interface{})  { logf(LevelInfo, l.tag+format, a...) }
func (l Logger) Warnf(format string, a ...interface{})  { logf(LevelWarn, l.tag+format, a...) }
func (l Logger) Errorf(format string, a ...interface{}) { logf(LevelError, l.tag+format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func (l Logger) TimeTrack(start time.Time, label string) {
	l.Debugf("%s took %s", label, time.Since(start))
}

// Outcome logs a finished user action: a warning carrying err when it failed, an info line
// with detail otherwise. On failure detail names the failure class.
func (l Logger) Outcome(action, detail string, err error) {
	if err != nil {
		l.Warnf("%s failed (%s): %v", action, detail, err)
		return
	}
	l.Infof("%s: %s", action, detail)
}
