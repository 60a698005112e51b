package handlers

import (
	"net/http"

	"athena/internal/identifier"
	"athena/internal/logger"
	"athena/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateBooking - POST /api/bookings
// Create a pending booking, or return the existing one for the same email.
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.bookings.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to create booking", "error", err)
		respondError(c, err)
		return
	}

	if response.Existing {
		c.JSON(http.StatusOK, response)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// LookupBooking - GET /api/bookings/lookup?identifier=...
// Resolve free text to a booking. The identifier can be an email, a booking
// code or a phone number in any of its accepted spellings.
func (h *Handlers) LookupBooking(c *gin.Context) {
	text := c.Query("identifier")
	if text == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "identifier is required"})
		return
	}

	kind, value := identifier.Classify(text)
	response, err := h.bookings.GetBookingInfo(c.Request.Context(), kind, value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// BookingQR - GET /api/bookings/:identifier/qr
// Entry code payload for a completed, still-valid booking.
func (h *Handlers) BookingQR(c *gin.Context) {
	text := c.Param("identifier")

	kind, value := identifier.Classify(text)
	response, err := h.bookings.QRPayload(c.Request.Context(), kind, value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
