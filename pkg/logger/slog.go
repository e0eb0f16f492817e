package logger

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/botguard/pkg/redact"
)

// Slog returns a *slog.Logger that writes through the same pipeline under
// module. Attributes are appended to the message as key=value pairs and the
// whole line is masked by the redactor. Values of credential keys (token,
// cookie, set-cookie, authorization and *_token) are replaced with
// redact.Placeholder before rendering, whatever they contain.
func (l *Logger) Slog(module string) *slog.Logger {
	if module == "" {
		module = defaultName
	}
	var h slog.Handler = &pipelineHandler{l: l, module: module}
	if len(l.attrs) > 0 {
		h = h.WithAttrs(l.attrs)
	}
	return slog.New(NewContextHandler(h, l.extractors...))
}

// pipelineHandler adapts slog records to Logger.emit.
type pipelineHandler struct {
	l      *Logger
	module string
	prefix string // group path, "a.b."
	attrs  string // preformatted " k=v" pairs from WithAttrs
}

func (h *pipelineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.l.Enabled(fromSlog(level))
}

func (h *pipelineHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(rec.Message)
	b.WriteString(h.attrs)
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	h.l.emit(h.l.now(), fromSlog(rec.Level), h.module, b.String())
	return nil
}

func (h *pipelineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	clone := *h
	clone.attrs = b.String()
	return &clone
}

func (h *pipelineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if len(group) == 0 {
			return
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			appendAttr(b, p, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	if sensitiveKey(a.Key) {
		b.WriteString(redact.Placeholder)
		return
	}
	b.WriteString(quoteIfNeeded(a.Value.String()))
}

func sensitiveKey(key string) bool {
	key = strings.ToLower(key)
	switch key {
	case "token", "cookie", "cookies", "set-cookie", "set_cookie", "authorization":
		return true
	}
	return strings.HasSuffix(key, "_token") || strings.HasSuffix(key, "-token")
}

// quoteIfNeeded quotes values with separators. A colon is quoted too, so a
// value such as "cookie:1" can only be masked up to its closing quote and the
// attributes after it survive.
func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=:") {
		return strconv.Quote(s)
	}
	return s
}
