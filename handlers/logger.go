package handlers

import (
	"chequered/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key holding the request-scoped logger.
const LoggerKey = "logger"

// getLogger retrieves the request-scoped Zap logger from the Gin context, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
