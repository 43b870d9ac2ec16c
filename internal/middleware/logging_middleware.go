package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikkim/realty-review-backend/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// quietPaths are hit by health checks and only logged at debug level.
var quietPaths = map[string]bool{
	"/health": true,
}

// LoggingMiddleware attaches a request-scoped logger and records one line per finished request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		requestID := resolveRequestID(c)

		reqLog := logger.WithContext(logger.Fields{
			requestIDKey: requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		})
		c.Set(loggerKey, reqLog)

		c.Next()

		logCompletion(c, reqLog, time.Since(started))
	}
}

func resolveRequestID(c *gin.Context) string {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(RequestIDHeader, id)
	return id
}

func logCompletion(c *gin.Context, reqLog *logger.Logger, latency time.Duration) {
	status := c.Writer.Status()
	fields := logger.Fields{
		"status_code": status,
		"latency_ms":  latency.Milliseconds(),
		"body_size":   c.Writer.Size(),
	}
	if q := c.Request.URL.RawQuery; q != "" {
		fields["query"] = q
	}
	if userID, ok := GetUserID(c); ok {
		fields["user_id"] = userID
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}

	const msg = "Request completed"
	switch {
	case status >= 500:
		reqLog.Error(msg, nil, fields)
	case status >= 400:
		reqLog.Warn(msg, fields)
	case quietPaths[c.Request.URL.Path]:
		reqLog.Debug(msg, fields)
	default:
		reqLog.Info(msg, fields)
	}
}

// GetRequestID returns the id assigned by LoggingMiddleware, or "" outside a request.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GetLoggerFromContext returns the request-scoped logger, falling back to the global one.
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
