package handlers

import (
	"net/http"

	"chequered/middleware"
	"chequered/services/checkin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StaffHandler serves the gate console.
type StaffHandler struct {
	Service checkin.CheckInService
}

func NewStaffHandler(svc checkin.CheckInService) *StaffHandler {
	return &StaffHandler{Service: svc}
}

type resolveTicketRequest struct {
	Code string `json:"code" binding:"required"`
}

type checkInRequest struct {
	Arrived []int `json:"arrived" binding:"required,min=1"`
}

func (h *StaffHandler) ResolveTicket(c *gin.Context) {
	var req resolveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.ResolveTicket(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *StaffHandler) ValidateTicket(c *gin.Context) {
	b, err := h.Service.ValidateTicket(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *StaffHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.Service.ProcessCheckIn(c.Request.Context(), c.Param("bookingID"), req.Arrived)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("gate check-in",
		zap.String("operator", c.GetString(middleware.OperatorIDKey)),
		zap.String("bookingId", result.Booking.ID))
	c.JSON(http.StatusOK, result)
}

func (h *StaffHandler) Manifest(c *gin.Context) {
	bookings, err := h.Service.Manifest(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
