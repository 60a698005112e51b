package handlers

import (
	"context"
	"errors"
	"net/http"

	"athena/internal/apperrors"
	"athena/internal/identifier"
	"athena/internal/models"

	"github.com/gin-gonic/gin"
)

// BookingService is the slice of the service layer the HTTP surface needs.
type BookingService interface {
	CreateBooking(ctx context.Context, req *models.CreateBookingRequest) (*models.CreateBookingResponse, error)
	GetBookingInfo(ctx context.Context, kind identifier.Kind, value string) (*models.BookingInfoResponse, error)
	QRPayload(ctx context.Context, kind identifier.Kind, value string) (*models.QRPayloadResponse, error)
}

type Handlers struct {
	bookings BookingService
}

func NewHandlers(bookings BookingService) *Handlers {
	return &Handlers{
		bookings: bookings,
	}
}

// respondError maps service error kinds to HTTP statuses.
func respondError(c *gin.Context, err error) {
	c.Error(err)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDataInconsistency):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Storage unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
