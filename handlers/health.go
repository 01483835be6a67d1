package handlers

import (
	"net/http"

	"chequered/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest dependency check.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "message": "Black Cats & Chequered Flags booking service"})
}
