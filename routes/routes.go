package routes

import (
	"chequered/config"
	"chequered/handlers"
	"chequered/middleware"
	"chequered/utils"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVisitorRoutes registers the public booking endpoints.
func RegisterVisitorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/visitor")
	{
		api.GET("/experiences", hb.Visitor.ListExperiences)
		api.GET("/experiences/:id/slots", hb.Visitor.GetSlots)
		api.GET("/experiences/:id/options", hb.Visitor.GetOptions)

		api.POST("/holds", hb.Visitor.HoldSlot)
		api.DELETE("/holds/:holdID", hb.Visitor.ReleaseHold)

		api.POST("/bookings", hb.Visitor.CreateBooking)
		api.POST("/bookings/option", hb.Visitor.BookOption)
		api.POST("/bookings/lookup", hb.Visitor.LookupBooking)
		api.POST("/bookings/cancel", hb.Visitor.CancelBooking)
	}
}

// RegisterStaffRoutes registers the gate console endpoints. Admins may use them too.
func RegisterStaffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/staff")
	{
		api.Use(middleware.RequireRole(utils.RoleStaff, utils.RoleAdmin))
		api.POST("/tickets/resolve", hb.Staff.ResolveTicket)
		api.POST("/tickets/:bookingID/validate", hb.Staff.ValidateTicket)
		api.POST("/tickets/:bookingID/checkin", hb.Staff.CheckIn)
		api.GET("/manifest", hb.Staff.Manifest)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.RequireRole(utils.RoleAdmin))

		adminGroup.GET("/experiences", hb.Admin.ListExperiences)
		adminGroup.POST("/experiences", hb.Admin.CreateExperience)
		adminGroup.PUT("/experiences/:id", hb.Admin.UpdateExperience)
		adminGroup.DELETE("/experiences/:id", hb.Admin.DeleteExperience)
		adminGroup.PATCH("/experiences/:id/active", hb.Admin.SetExperienceActive)
		adminGroup.GET("/experiences/:id/slots", hb.Admin.ListSlots)

		adminGroup.GET("/schedules", hb.Admin.ListSchedules)
		adminGroup.GET("/schedules/:date", hb.Admin.GetSchedule)
		adminGroup.PUT("/schedules/:date", hb.Admin.SaveSchedule)

		adminGroup.PUT("/slots/:slotID/block", hb.Admin.ToggleSlotBlock)

		adminGroup.POST("/system/reset", hb.Admin.ResetSystem)
		adminGroup.POST("/system/defaults", hb.Admin.LoadDefaults)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	health := hb.HealthHandler
	if health == nil {
		health = handlers.Health
	}
	r.GET("/health", health)
}

func corsOrigins() []string {
	raw := strings.TrimSpace(config.AppConfig.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := corsOrigins()
	allowAll := len(origins) == 1 && origins[0] == "*"
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: !allowAll,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterVisitorRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
