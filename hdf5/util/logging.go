// Package util has helpers shared by the hdf5 packages.
package util

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Logger is a leveled logger. Messages above the configured level are
// discarded.
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
	return &Logger{
		logLevel: LogLevelDefault,
		logger:   log.New(os.Stderr, "", log.LstdFlags),
	}
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

// output prints one preformatted line at the given level. Fatal lines
// stop the program the way the standard logger does.
func (l *Logger) output(level int, s string) {
	if level > l.logLevel {
		return
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.logger.SetPrefix(levelToPrefix[level])
	if level == LevelFatal {
		l.logger.Fatal(s)
	}
	l.logger.Print(s)
}

func (l *Logger) Info(v ...any) {
	l.output(LevelInfo, fmt.Sprintln(v...))
}

func (l *Logger) Infof(format string, v ...any) {
	l.output(LevelInfo, fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(v ...any) {
	l.output(LevelWarn, fmt.Sprintln(v...))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.output(LevelWarn, fmt.Sprintf(format, v...))
}

func (l *Logger) Error(v ...any) {
	l.output(LevelError, fmt.Sprintln(v...))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.output(LevelError, fmt.Sprintf(format, v...))
}

func (l *Logger) Fatal(v ...any) {
	l.output(LevelFatal, fmt.Sprintln(v...))
}

func (l *Logger) Fatalf(format string, v ...any) {
	l.output(LevelFatal, fmt.Sprintf(format, v...))
}
