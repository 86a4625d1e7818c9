package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"session_logger/internal/logger"
)

// RequestLogger logs one line per request through the session logger.
// Server errors are logged as errors, client errors as warnings.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		level := logger.InfoLevel
		switch {
		case status >= 500:
			level = logger.ErrorLevel
		case status >= 400:
			level = logger.WarnLevel
		}

		msg := fmt.Sprintf("%s %s %d %s %s", c.Request.Method, path, status, time.Since(start).Round(time.Microsecond), c.ClientIP())
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			msg += " " + errs
		}
		l.Log(level, msg)
	}
}
