package handlers

import (
	"net/http"

	"chequered/middleware"
	"chequered/models"
	"chequered/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the admin console operations.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type blockRequest struct {
	Blocked *bool  `json:"blocked" binding:"required"`
	Reason  string `json:"reason"`
}

func (h *AdminHandler) ListExperiences(c *gin.Context) {
	exps, err := h.Service.ListExperiences(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exps)
}

func (h *AdminHandler) CreateExperience(c *gin.Context) {
	var exp models.Experience
	if err := c.ShouldBindJSON(&exp); err != nil {
		badRequest(c, err)
		return
	}
	exp.ID = ""
	saved, err := h.Service.SaveExperience(c.Request.Context(), exp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *AdminHandler) UpdateExperience(c *gin.Context) {
	var exp models.Experience
	if err := c.ShouldBindJSON(&exp); err != nil {
		badRequest(c, err)
		return
	}
	exp.ID = c.Param("id")
	saved, err := h.Service.SaveExperience(c.Request.Context(), exp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *AdminHandler) DeleteExperience(c *gin.Context) {
	if err := h.Service.DeleteExperience(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SetExperienceActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	exp, err := h.Service.SetExperienceActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

func (h *AdminHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.Service.GetSchedule(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *AdminHandler) SaveSchedule(c *gin.Context) {
	var schedule models.DaySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		badRequest(c, err)
		return
	}
	schedule.Date = c.Param("date")
	saved, err := h.Service.SaveSchedule(c.Request.Context(), schedule)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *AdminHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.Service.ListSchedules(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *AdminHandler) ListSlots(c *gin.Context) {
	slots, err := h.Service.ListSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *AdminHandler) ToggleSlotBlock(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	slot, err := h.Service.ToggleSlotBlock(c.Request.Context(), c.Param("slotID"), *req.Blocked, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *AdminHandler) ResetSystem(c *gin.Context) {
	getLogger(c).Warn("system reset requested", zap.String("operator", c.GetString(middleware.OperatorIDKey)))
	if err := h.Service.ResetSystem(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "system reset"})
}

func (h *AdminHandler) LoadDefaults(c *gin.Context) {
	exps, err := h.Service.LoadDefaults(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exps)
}
