// File: services/booking/errors.go
package booking

import (
	"errors"
	"fmt"
)

// Classification codes for remote booking failures.
const (
	CodeFailedPrecondition = "failed-precondition"
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidArgument    = "invalid-argument"
	CodeUnknown            = "unknown"
)

// BookingError is a classified failure from the remote booking procedure.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) error {
	return &BookingError{
		Code:    code,
		Message: msg,
	}
}

// UserMessage maps a classified failure to the message shown to the user.
// Precondition failures surface the server's own message because it reflects
// current authoritative state; invalid-argument is a client bug and gets a
// generic message.
func (e *BookingError) UserMessage() string {
	switch e.Code {
	case CodeFailedPrecondition:
		return e.Message
	case CodeUnauthenticated:
		return "Please log in again."
	case CodeInvalidArgument:
		return "Invalid booking data."
	default:
		return "Booking failed. Try again."
	}
}

// IneligibleError reports that the pre-submission eligibility re-check failed.
// This is a displayable decision, not a remote failure.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return "not bookable: " + e.Reason
}

// ErrConfirmationInFlight rejects a second confirmation while one is already
// submitting for the same user.
var ErrConfirmationInFlight = errors.New("a booking confirmation is already in progress")
