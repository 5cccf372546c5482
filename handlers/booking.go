package handlers

import (
	"errors"
	"net/http"
	"time"

	"studiobook/middleware"
	"studiobook/models"
	"studiobook/services/booking"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
)

// ConfirmBookingHandler re-checks eligibility and submits the booking.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking data.", err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking data.", "expected YYYY-MM-DD date")
		return
	}

	confirmation, err := hb.Booking.Confirm(c.Request.Context(), sess, req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// GetBookingsHandler lists the user's bookings. With no range it returns the
// current studio-local day.
func (hb *HandlerBundle) GetBookingsHandler(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Please log in again.", "")
		return
	}

	from := c.DefaultQuery("from", hb.Clock.Today())
	to := c.DefaultQuery("to", from)
	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date range", "expected YYYY-MM-DD")
			return
		}
	}

	bookings, err := hb.Booking.History(c.Request.Context(), sess.UID, from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// writeBookingError maps the booking error taxonomy onto HTTP responses.
func writeBookingError(c *gin.Context, err error) {
	var inel *booking.IneligibleError
	if errors.As(err, &inel) {
		c.JSON(http.StatusConflict, gin.H{"canBook": false, "reason": inel.Reason})
		return
	}

	var be *booking.BookingError
	if errors.As(err, &be) {
		status := http.StatusBadGateway
		switch be.Code {
		case booking.CodeFailedPrecondition:
			status = http.StatusConflict
		case booking.CodeUnauthenticated:
			status = http.StatusUnauthorized
		case booking.CodeInvalidArgument:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": be.UserMessage(), "code": be.Code})
		return
	}

	if errors.Is(err, booking.ErrConfirmationInFlight) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "A booking is already in progress."})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking failed. Try again."})
}
