package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/todoui/internal/api"
)

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(api.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(api.RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request and records it in metrics. Unknown
// procedure names share one label.
func requestLogger(logger *zap.Logger, metrics *Metrics, known func(string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		procedure := c.Param("procedure")
		label := procedure
		switch {
		case procedure == "":
			label = c.FullPath()
		case !known(procedure):
			label = "unknown"
		}
		if label == "" {
			label = "unmatched"
		}
		metrics.RecordRequest(label, strconv.Itoa(status), latency)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("procedure", procedure),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= 500:
			logger.Error("rpc request", fields...)
		case status >= 400:
			logger.Warn("rpc request", fields...)
		default:
			logger.Info("rpc request", fields...)
		}
	}
}
