package routes

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"session_logger/internal/config"
	"session_logger/internal/logger"
	"session_logger/internal/middleware"
)

// Router is the HTTP engine plus the pipes carrying gin's own output into
// the session logger. Close releases the pipes.
type Router struct {
	*gin.Engine

	debugOut *io.PipeWriter
	errorOut *io.PipeWriter
}

// SetupRouter builds the HTTP engine. Gin's own output goes through l.
func SetupRouter(cfg config.Config, l *logger.Logger) *Router {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		debugOut: l.Writer(logger.DebugLevel),
		errorOut: l.Writer(logger.ErrorLevel),
	}
	gin.DefaultWriter = r.debugOut
	gin.DefaultErrorWriter = r.errorOut

	r.Engine = gin.New()
	r.Use(middleware.RequestLogger(l), gin.RecoveryWithWriter(r.errorOut))

	HealthRoutes(r.Engine, cfg, l)

	return r
}

// Close stops piping gin output into the logger and restores gin's defaults.
func (r *Router) Close() error {
	if gin.DefaultWriter == r.debugOut {
		gin.DefaultWriter = os.Stdout
	}
	if gin.DefaultErrorWriter == r.errorOut {
		gin.DefaultErrorWriter = os.Stderr
	}
	return errors.Join(r.debugOut.Close(), r.errorOut.Close())
}

// HealthRoutes reports liveness along with the startup cleanup result.
func HealthRoutes(r *gin.Engine, cfg config.Config, l *logger.Logger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"environment":    cfg.Environment,
			"session":        l.SessionFile(),
			"oldLogsDeleted": l.Deleted(),
		})
	})
}
