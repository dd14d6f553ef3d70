package handlers

import (
	"net/http"
	"time"

	"apnakam/config"
	"apnakam/models"
	"apnakam/services/apperrors"
	"apnakam/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bookingDateLayout = "2006-01-02"

type BookingHandler struct {
	Bookings booking.BookingService
}

type createBookingRequest struct {
	WorkerID     string `json:"workerId" binding:"required"`
	WorkerName   string `json:"workerName"`
	CustomerName string `json:"customerName"`
	BookingDate  string `json:"bookingDate" binding:"required"`
}

// CreateBookingHandler opens a booking with the caller as the customer.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := time.ParseInLocation(bookingDateLayout, req.BookingDate, config.Location())
	if err != nil {
		respondError(c, apperrors.NewValidationError("bookingDate", "booking date must be YYYY-MM-DD"))
		return
	}

	created, err := h.Bookings.CreateBooking(c.Request.Context(), models.CreateBookingInput{
		WorkerID:     req.WorkerID,
		CustomerID:   callerID(c),
		WorkerName:   req.WorkerName,
		CustomerName: req.CustomerName,
		BookingDate:  date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking created", zap.String("bookingID", created.ID))
	c.JSON(http.StatusCreated, created)
}

// ListBookingsHandler returns the caller's bookings grouped into upcoming and past.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	list, err := h.Bookings.ListBookingsForUser(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type updateStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Bookings.UpdateBookingStatus(c.Request.Context(), callerID(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
