package handlers

import (
	"errors"
	"net/http"

	"chequered/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err as a JSON error. Service errors carry their own
// status and message; anything else is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.JSONError(c, utils.HTTPStatus(err), appErr.Message, appErr.Code)
		return
	}
	getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred. Please try again later.")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
