// File: services/booking/callable_test.go
package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studiobook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callableServer(t *testing.T, status int, errStatus, errMessage string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookSlot", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var envelope struct {
			Data models.BookingRequest `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		assert.Equal(t, "slot-1", envelope.Data.SlotID)

		if status < 300 {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"success": true}})
			return
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"status": errStatus, "message": errMessage},
		})
	}))
}

func TestCallableBookSlotSuccess(t *testing.T) {
	srv := callableServer(t, http.StatusOK, "", "")
	defer srv.Close()

	client := NewCallableClient(srv.URL)
	err := client.BookSlot(context.Background(), "token-123", models.BookingRequest{SlotID: "slot-1", Date: "2026-09-01"})
	require.NoError(t, err)
}

func TestCallableBookSlotClassification(t *testing.T) {
	tests := []struct {
		name        string
		httpStatus  int
		errStatus   string
		errMessage  string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "precondition surfaces server message",
			httpStatus:  http.StatusBadRequest,
			errStatus:   "FAILED_PRECONDITION",
			errMessage:  "Class is full",
			wantCode:    CodeFailedPrecondition,
			wantMessage: "Class is full",
		},
		{
			name:        "unauthenticated",
			httpStatus:  http.StatusUnauthorized,
			errStatus:   "UNAUTHENTICATED",
			errMessage:  "token expired",
			wantCode:    CodeUnauthenticated,
			wantMessage: "Please log in again.",
		},
		{
			name:        "invalid argument",
			httpStatus:  http.StatusBadRequest,
			errStatus:   "INVALID_ARGUMENT",
			errMessage:  "missing slotId",
			wantCode:    CodeInvalidArgument,
			wantMessage: "Invalid booking data.",
		},
		{
			name:        "unrecognized status falls back to unknown",
			httpStatus:  http.StatusInternalServerError,
			errStatus:   "INTERNAL",
			errMessage:  "boom",
			wantCode:    CodeUnknown,
			wantMessage: "Booking failed. Try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := callableServer(t, tt.httpStatus, tt.errStatus, tt.errMessage)
			defer srv.Close()

			client := NewCallableClient(srv.URL)
			err := client.BookSlot(context.Background(), "token-123", models.BookingRequest{SlotID: "slot-1", Date: "2026-09-01"})
			require.Error(t, err)

			var be *BookingError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.wantCode, be.Code)
			assert.Equal(t, tt.wantMessage, be.UserMessage())
		})
	}
}

func TestCallableBookSlotGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := NewCallableClient(srv.URL)
	err := client.BookSlot(context.Background(), "t", models.BookingRequest{SlotID: "s", Date: "2026-09-01"})
	var be *BookingError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, CodeUnknown, be.Code)
}
