// Package logger configures slog for the advance-app binaries and carries a
// request-scoped logger through the request context.
//
// In dev/test environments logs are written with the tint handler (human
// readable, colored); in prod/staging a JSON handler is used so logs can be
// shipped to an aggregator.
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lmittmann/tint"
)

type contextKey int

const (
	requestLoggerKey contextKey = iota
	logAttrsKey
)

// ParseLogLevel converts a LOG_LEVEL env value to a slog.Level.
// Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger creates the application logger and installs it as the slog
// default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	switch environment {
	case "prod", "staging":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// attrCollector accumulates attributes added by handlers/middleware during a
// request so the final request log line can include them.
type attrCollector struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

func (c *attrCollector) add(attrs ...slog.Attr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attrs = append(c.attrs, attrs...)
}

func (c *attrCollector) all() []slog.Attr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]slog.Attr(nil), c.attrs...)
}

// ContextWithRequestLogger returns a context carrying a request-scoped logger.
func ContextWithRequestLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, logger)
}

// ContextRequestLogger returns the request-scoped logger from the context, or
// the default logger if none was set (e.g. in tests).
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ContextWithLogAttrs records attributes against the current request so they
// are included in the final request log line. It is a no-op if the context
// was not set up by the RequestLogging middleware.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	if collector, ok := ctx.Value(logAttrsKey).(*attrCollector); ok {
		collector.add(attrs...)
	}
}

// RequestLogging returns a middleware that attaches a request-scoped logger
// (tagged with the chi request ID) to the context and emits one log line per
// request with the status code and duration.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			reqLogger := logger.With(slog.String("request_id", requestID))

			collector := &attrCollector{}
			ctx := ContextWithRequestLogger(r.Context(), reqLogger)
			ctx = context.WithValue(ctx, logAttrsKey, collector)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			}
			attrs = append(attrs, collector.all()...)

			reqLogger.LogAttrs(r.Context(), slog.LevelInfo, "request", attrs...)
		})
	}
}
