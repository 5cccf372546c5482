package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studiobook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteBookingError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ineligible returns the decision reason",
			err:        &booking.IneligibleError{Reason: booking.ReasonFull},
			wantStatus: http.StatusConflict,
			wantBody:   `"reason":"Full"`,
		},
		{
			name:       "precondition surfaces server message",
			err:        booking.NewBookingError(booking.CodeFailedPrecondition, "Class is full"),
			wantStatus: http.StatusConflict,
			wantBody:   `"error":"Class is full"`,
		},
		{
			name:       "unauthenticated",
			err:        booking.NewBookingError(booking.CodeUnauthenticated, "expired"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `"error":"Please log in again."`,
		},
		{
			name:       "invalid argument",
			err:        booking.NewBookingError(booking.CodeInvalidArgument, "bad slot"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"Invalid booking data."`,
		},
		{
			name:       "unknown remote failure",
			err:        booking.NewBookingError(booking.CodeUnknown, "boom"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `"error":"Booking failed. Try again."`,
		},
		{
			name:       "in-flight guard",
			err:        booking.ErrConfirmationInFlight,
			wantStatus: http.StatusTooManyRequests,
			wantBody:   "already in progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			writeBookingError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
