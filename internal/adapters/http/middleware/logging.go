package middleware

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/logger"
)

type accessLog struct {
	method     string
	path       string
	route      string
	status     int
	duration   time.Duration
	attributes map[string]any
}

func (a accessLog) write(ctx context.Context) {
	attrs := map[string]any{
		"http.method":      a.method,
		"http.path":        a.path,
		"http.route":       a.route,
		"http.status_code": a.status,
		"http.duration_ms": a.duration.Milliseconds(),
	}
	for key, value := range a.attributes {
		attrs[key] = value
	}

	level := logger.LogLevelInfo
	switch {
	case a.status >= 500:
		level = logger.LogLevelError
	case a.status >= 400:
		level = logger.LogLevelWarn
	}

	logger.Log(ctx, logger.LogEntry{
		Level:      level,
		Message:    "HTTP Request",
		Attributes: attrs,
	})
}

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// Only error bodies are logged; CSV exports and product lists can be large.
const maxLoggedBodySize = 16 * 1024

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len()+len(b) <= maxLoggedBodySize {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseBodyWriter) WriteString(s string) (int, error) {
	if w.body.Len()+len(s) <= maxLoggedBodySize {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		bodyWriter := &responseBodyWriter{
			ResponseWriter: c.Writer,
			body:           buf,
		}
		c.Writer = bodyWriter

		c.Next()

		attrs := map[string]any{}
		if id := c.GetString(requestIDContextKey); id != "" {
			attrs["http.request_id"] = id
		}
		if value, ok := c.Get(principalContextKey); ok {
			if principal, ok := value.(*domain.Principal); ok {
				attrs["auth.username"] = principal.Username
			}
		}
		if contentLength := c.Request.Header.Get("Content-Length"); contentLength != "" {
			if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
				attrs["http.request_size"] = size
			}
		}
		attrs["http.response_size"] = c.Writer.Size()

		status := c.Writer.Status()
		contentType := c.Writer.Header().Get("Content-Type")
		if status >= 400 && strings.Contains(contentType, "application/json") && bodyWriter.body.Len() > 0 {
			attrs["http.response_body"] = bodyWriter.body.String()
		}

		accessLog{
			method:     c.Request.Method,
			path:       c.Request.URL.Path,
			route:      c.FullPath(),
			status:     status,
			duration:   time.Since(start),
			attributes: attrs,
		}.write(c.Request.Context())
	}
}
