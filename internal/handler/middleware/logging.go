package middleware

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"voucher-issuer/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// gateway delivery id headers, first one present wins
var deliveryHeaders = []string{"X-Webhook-Id", "Webhook-Id", "Stripe-Webhook-Id"}

type Logger struct {
	logger   *slog.Logger
	cfg      config.LogConfig
	timezone *time.Location
}

func NewLogger(cfg config.LogConfig) *Logger {
	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return &Logger{
		logger:   logger,
		cfg:      cfg,
		timezone: timezone,
	}
}

// unknown levels fall back to info
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware tags every request with a request id and logs its completion.
// An inbound X-Request-ID is kept so ids correlate across a proxy.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = l.newRequestID(start)
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		if id := deliveryID(c); id != "" {
			attrs = append(attrs, slog.String("delivery_id", id))
		}

		l.logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "request started", attrs...)

		c.Next()

		status := c.Writer.Status()
		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		l.logger.LogAttrs(c.Request.Context(), levelForStatus(status), "request completed", attrs...)
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func deliveryID(c *gin.Context) string {
	for _, h := range deliveryHeaders {
		if v := c.GetHeader(h); v != "" {
			return v
		}
	}
	return ""
}

func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func (l *Logger) newRequestID(now time.Time) string {
	return now.In(l.timezone).Format("20060102150405") + "-" + uuid.NewString()[:8]
}
