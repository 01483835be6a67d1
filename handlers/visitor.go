package handlers

import (
	"net/http"
	"strconv"

	"chequered/models"
	"chequered/services/booking"
	"chequered/utils"

	"github.com/gin-gonic/gin"
)

// VisitorHandler serves the public booking endpoints.
type VisitorHandler struct {
	Service booking.BookingService
}

func NewVisitorHandler(svc booking.BookingService) *VisitorHandler {
	return &VisitorHandler{Service: svc}
}

type holdRequest struct {
	SlotID string `json:"slotId" binding:"required"`
	Pax    int    `json:"pax" binding:"required,min=1"`
}

type createBookingRequest struct {
	HoldID  string                `json:"holdId"`
	SlotID  string                `json:"slotId"`
	Pax     int                   `json:"pax"`
	Visitor models.VisitorDetails `json:"visitor" binding:"required"`
}

type bookOptionRequest struct {
	Option  models.SlotOption     `json:"option" binding:"required"`
	Visitor models.VisitorDetails `json:"visitor" binding:"required"`
}

type ticketLookupRequest struct {
	Email         string `json:"email" binding:"required,email"`
	ReferenceCode string `json:"referenceCode" binding:"required"`
}

// paxQuery reads ?pax=, defaulting to 1.
func paxQuery(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("pax", "1")
	pax, err := strconv.Atoi(raw)
	if err != nil || pax < 1 {
		respondError(c, booking.ErrInvalidPax)
		return 0, false
	}
	return pax, true
}

func (h *VisitorHandler) ListExperiences(c *gin.Context) {
	pax, ok := paxQuery(c)
	if !ok {
		return
	}
	out, err := h.Service.ListExperiences(c.Request.Context(), pax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *VisitorHandler) GetSlots(c *gin.Context) {
	slots, err := h.Service.GetSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *VisitorHandler) GetOptions(c *gin.Context) {
	pax, ok := paxQuery(c)
	if !ok {
		return
	}
	options, err := h.Service.FindBookingOptions(c.Request.Context(), c.Param("id"), pax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *VisitorHandler) HoldSlot(c *gin.Context) {
	var req holdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hold, err := h.Service.HoldSlot(c.Request.Context(), req.SlotID, req.Pax)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hold)
}

func (h *VisitorHandler) ReleaseHold(c *gin.Context) {
	if err := h.Service.ReleaseHold(c.Request.Context(), c.Param("holdID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBooking confirms a held slot, or books slotId+pax in one step when no hold is given.
func (h *VisitorHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		b   *models.Booking
		err error
	)
	switch {
	case req.HoldID != "":
		b, err = h.Service.ConfirmBooking(c.Request.Context(), req.HoldID, req.Visitor)
	case req.SlotID != "":
		b, err = h.Service.CreateBooking(c.Request.Context(), req.SlotID, req.Pax, req.Visitor)
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "either holdId or slotId is required")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *VisitorHandler) BookOption(c *gin.Context) {
	var req bookOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	bookings, err := h.Service.BookOption(c.Request.Context(), req.Option, req.Visitor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookings)
}

func (h *VisitorHandler) LookupBooking(c *gin.Context) {
	var req ticketLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.LookupBooking(c.Request.Context(), req.Email, req.ReferenceCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *VisitorHandler) CancelBooking(c *gin.Context) {
	var req ticketLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.CancelBooking(c.Request.Context(), req.Email, req.ReferenceCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
