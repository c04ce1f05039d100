package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
)

// Options configures the process logger.
type Options struct {
	Level string
	// OTel also exports every record through the global OTel logger
	// provider under the ServiceName scope.
	OTel        bool
	ServiceName string
	// Output receives the JSON lines; stdout when nil.
	Output io.Writer
}

// Init builds the logger described by opts and installs it as the slog default.
func Init(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

// New builds a JSON logger that adds trace and request context to each
// record, fanned out to OTel when enabled.
func New(opts Options) *slog.Logger {
	lvl := ParseLevel(opts.Level)
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler = NewTraceContextHandler(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
	if opts.OTel {
		scope := opts.ServiceName
		if scope == "" {
			scope = "natal-chart"
		}
		handler = NewMultiHandler(handler, NewOTelHandler(global.GetLoggerProvider(), scope, lvl))
	}
	return slog.New(handler)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OTelHandler is a slog.Handler that emits records to an OTel logger.
// Trace and request IDs ride along as top-level attributes.
type OTelHandler struct {
	logger log.Logger
	attrs  []log.KeyValue
	prefix string
	level  slog.Level
}

// NewOTelHandler emits through provider under the given instrumentation scope.
func NewOTelHandler(provider log.LoggerProvider, scope string, level slog.Level) *OTelHandler {
	return &OTelHandler{
		logger: provider.Logger(scope),
		level:  level,
	}
}

func (h *OTelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *OTelHandler) Handle(ctx context.Context, r slog.Record) error {
	var rec log.Record
	rec.SetTimestamp(r.Time)
	rec.SetObservedTimestamp(time.Now())
	rec.SetBody(log.StringValue(r.Message))
	rec.SetSeverity(severity(r.Level))
	rec.SetSeverityText(r.Level.String())

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttributes(
			log.String("trace_id", sc.TraceID().String()),
			log.String("span_id", sc.SpanID().String()),
		)
	}
	if id := RequestIDFrom(ctx); id != "" {
		rec.AddAttributes(log.String(RequestIDKey, id))
	}

	rec.AddAttributes(h.attrs...)
	kvs := make([]log.KeyValue, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		kvs = appendAttr(kvs, h.prefix, a)
		return true
	})
	rec.AddAttributes(kvs...)

	h.logger.Emit(ctx, rec)
	return nil
}

func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	kvs := append([]log.KeyValue(nil), h.attrs...)
	for _, a := range attrs {
		kvs = appendAttr(kvs, h.prefix, a)
	}
	return &OTelHandler{logger: h.logger, attrs: kvs, prefix: h.prefix, level: h.level}
}

func (h *OTelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &OTelHandler{logger: h.logger, attrs: h.attrs, prefix: h.prefix + name + ".", level: h.level}
}

func severity(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	default:
		return log.SeverityDebug
	}
}

// appendAttr flattens a into dotted keys under prefix.
func appendAttr(kvs []log.KeyValue, prefix string, a slog.Attr) []log.KeyValue {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return kvs
	}
	key := prefix + a.Key

	switch a.Value.Kind() {
	case slog.KindGroup:
		if a.Key != "" {
			prefix = key + "."
		}
		for _, ga := range a.Value.Group() {
			kvs = appendAttr(kvs, prefix, ga)
		}
		return kvs
	case slog.KindString:
		return append(kvs, log.String(key, a.Value.String()))
	case slog.KindInt64:
		return append(kvs, log.Int64(key, a.Value.Int64()))
	case slog.KindUint64:
		return append(kvs, log.Int64(key, int64(a.Value.Uint64())))
	case slog.KindFloat64:
		return append(kvs, log.Float64(key, a.Value.Float64()))
	case slog.KindBool:
		return append(kvs, log.Bool(key, a.Value.Bool()))
	case slog.KindDuration:
		return append(kvs, log.Float64(key, a.Value.Duration().Seconds()))
	case slog.KindTime:
		return append(kvs, log.String(key, a.Value.Time().Format(time.RFC3339Nano)))
	default:
		return append(kvs, log.String(key, a.Value.String()))
	}
}

// MultiHandler fans each record out to every enabled handler.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			_ = handler.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}
