package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes one line per event: level tag, component tag, message.
type Logger struct {
	mu    sync.Mutex
	out   *log.Logger
	level Level

	debugTag func(a ...interface{}) string
	infoTag  func(a ...interface{}) string
	warnTag  func(a ...interface{}) string
	errorTag func(a ...interface{}) string
	compTag  func(a ...interface{}) string
}

func NewLogger() *Logger {
	return New(os.Stdout, LevelInfo)
}

func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:      log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		level:    level,
		debugTag: color.New(color.FgHiBlack).SprintFunc(),
		infoTag:  color.New(color.FgGreen).SprintFunc(),
		warnTag:  color.New(color.FgYellow).SprintFunc(),
		errorTag: color.New(color.FgRed, color.Bold).SprintFunc(),
		compTag:  color.New(color.FgCyan).SprintFunc(),
	}
}

// Nop discards everything. Used by tests and optional collaborators.
func Nop() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) write(level Level, tag func(a ...interface{}) string, name, component, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	l.out.Printf("%s %s %s", tag(fmt.Sprintf("%-5s", name)), l.compTag("["+component+"]"), msg)
}

func (l *Logger) Debug(component, msg string) {
	l.write(LevelDebug, l.debugTag, "DEBUG", component, msg)
}

func (l *Logger) Info(component, msg string) {
	l.write(LevelInfo, l.infoTag, "INFO", component, msg)
}

func (l *Logger) Warn(component, msg string) {
	l.write(LevelWarn, l.warnTag, "WARN", component, msg)
}

func (l *Logger) Error(component, msg string) {
	l.write(LevelError, l.errorTag, "ERROR", component, msg)
}

func (l *Logger) Fatal(component, msg string) {
	l.write(LevelError, l.errorTag, "FATAL", component, msg)
	os.Exit(1)
}

func (l *Logger) Infof(component, format string, args ...interface{}) {
	l.Info(component, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(component, format string, args ...interface{}) {
	l.Warn(component, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(component, format string, args ...interface{}) {
	l.Error(component, fmt.Sprintf(format, args...))
}

func (l *Logger) LogProcess(component, msg string) {
	l.Info(component, msg)
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogDatabase(operation, table, msg string) {
	l.Debug("DATABASE", fmt.Sprintf("%s %s: %s", operation, table, msg))
}

func (l *Logger) LogKafka(operation, topic, msg string) {
	l.Info("KAFKA", fmt.Sprintf("%s %s: %s", operation, topic, msg))
}

func (l *Logger) LogSecurity(event, msg string) {
	l.Warn("SECURITY", fmt.Sprintf("%s: %s", event, msg))
}
