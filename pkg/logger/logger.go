package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	lineFormat  = "%s | %-5s | %-12s | %s"
	defaultName = "App"
)

// Logger is the leveled logging pipeline:
//
//	level filter -> mask -> format -> console (sync) -> sink (async)
//
// It is safe for concurrent use. The minimum level is shared by every Module
// and slog logger derived from it.
type Logger struct {
	level atomic.Int32

	consoleMu sync.Mutex
	console   io.Writer
	color     bool

	masker Masker
	sink   Sink
	now    func() time.Time

	attrs      []slog.Attr
	extractors []ContextExtractor
}

// SetLevel changes the minimum level for all subsequent calls.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Enabled reports whether lines at level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.Level()
}

// Log emits message for module at level. Below the minimum level it returns
// before any formatting or masking work.
func (l *Logger) Log(level Level, module, message string) {
	if !l.Enabled(level) {
		return
	}
	l.emit(l.now(), level, module, message)
}

// Module returns a logger bound to a module name, shown in the third column.
func (l *Logger) Module(name string) *Module {
	if name == "" {
		name = defaultName
	}
	return &Module{l: l, name: name}
}

func (l *Logger) emit(t time.Time, level Level, module, message string) {
	line := FormatLine(t, level, module, l.masker.Mask(message))

	if l.console != nil {
		l.writeConsole(level, line)
	}
	if l.sink != nil {
		l.sink.Enqueue(line)
	}
}

func (l *Logger) writeConsole(level Level, line string) {
	var b strings.Builder
	b.Grow(len(line) + 12)
	if l.color {
		b.WriteString(consoleColors[level])
		b.WriteString(line)
		b.WriteString(colorReset)
	} else {
		b.WriteString(line)
	}
	b.WriteByte('\n')

	l.consoleMu.Lock()
	defer l.consoleMu.Unlock()
	_, _ = io.WriteString(l.console, b.String())
}

// FormatLine renders one log line without color or trailing newline:
//
//	2024-05-01 10:15:00 | INFO  | Api          | message
func FormatLine(t time.Time, level Level, module, message string) string {
	return fmt.Sprintf(lineFormat, t.Format(timeLayout), level, module, message)
}

// Module is a Logger bound to a module name.
type Module struct {
	l    *Logger
	name string
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

func (m *Module) Debug(msg string) { m.l.Log(LevelDebug, m.name, msg) }
func (m *Module) Info(msg string)  { m.l.Log(LevelInfo, m.name, msg) }
func (m *Module) Warn(msg string)  { m.l.Log(LevelWarn, m.name, msg) }
func (m *Module) Error(msg string) { m.l.Log(LevelError, m.name, msg) }

func (m *Module) Debugf(format string, args ...any) { m.logf(LevelDebug, format, args...) }
func (m *Module) Infof(format string, args ...any)  { m.logf(LevelInfo, format, args...) }
func (m *Module) Warnf(format string, args ...any)  { m.logf(LevelWarn, format, args...) }
func (m *Module) Errorf(format string, args ...any) { m.logf(LevelError, format, args...) }

func (m *Module) logf(level Level, format string, args ...any) {
	if !m.l.Enabled(level) {
		return
	}
	m.l.emit(m.l.now(), level, m.name, fmt.Sprintf(format, args...))
}
