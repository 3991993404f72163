// Package util has small helpers shared by the cf packages.
package util

import (
	"log"
	"os"
	"sync"
)

// Logger is the diagnostic sink for non-fatal decode conditions, such
// as a masking attribute that cannot be cast to a variable's type.  It
// is passed explicitly into decode calls; there is no package-global
// logger.
type Logger struct {
	logLevel int
	logger   *log.Logger
	lock     sync.Mutex
}

const (
	// error levels that should almost always be printed
	LevelFatal = iota // error that must stop the program (panics)
	LevelError        // error that does not need to stop execution

	// debugging levels, okay to disable
	LevelWarn // something may be wrong, but not necessarily an error
	LevelInfo // nothing wrong, informational only

	// Production code by default only shows warnings and above.
	LogLevelDefault = LevelWarn

	// min, max levels for setting print level
	levelMin = LevelFatal
	levelMax = LevelInfo
)

var levelToPrefix = []string{
	"FATAL ",
	"ERROR ",
	"WARN ",
	"INFO ",
}

func NewLogger() *Logger {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	return &Logger{logLevel: LogLevelDefault, logger: logger}
}

func (l *Logger) LogLevel() int {
	return l.logLevel
}

func (l *Logger) SetLogLevel(level int) {
	if level < levelMin || level > levelMax {
		panic("trying to set invalid log level")
	}
	l.logLevel = level
}

// A nil *Logger is valid and discards everything, so callers never
// need a guard before logging.
func (l *Logger) output(level int, v ...any) {
	if l == nil || level > l.logLevel {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.logger.SetPrefix(levelToPrefix[level])
	l.logger.Println(v...)
}

func (l *Logger) outputf(level int, format string, v ...any) {
	if l == nil || level > l.logLevel {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.logger.SetPrefix(levelToPrefix[level])
	l.logger.Printf(format, v...)
}

func (l *Logger) Info(v ...any) {
	l.output(LevelInfo, v...)
}

func (l *Logger) Infof(format string, v ...any) {
	l.outputf(LevelInfo, format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.output(LevelWarn, v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.outputf(LevelWarn, format, v...)
}

func (l *Logger) Error(v ...any) {
	l.output(LevelError, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.outputf(LevelError, format, v...)
}
