package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Visitor *VisitorHandler
	Staff   *StaffHandler
	Admin   *AdminHandler

	HealthHandler gin.HandlerFunc
}
