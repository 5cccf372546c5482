// File: services/booking/callable.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"studiobook/models"
)

// CallableClient invokes the serverless booking procedure. The call is not
// idempotent and must never be retried automatically.
type CallableClient interface {
	BookSlot(ctx context.Context, idToken string, req models.BookingRequest) error
}

type httpCallableClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCallableClient builds a client for the callable-functions endpoint.
func NewCallableClient(baseURL string) CallableClient {
	return &httpCallableClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// callableEnvelope is the callable-protocol request wrapper.
type callableEnvelope struct {
	Data any `json:"data"`
}

type callableErrorBody struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *httpCallableClient) BookSlot(ctx context.Context, idToken string, req models.BookingRequest) error {
	body, err := json.Marshal(callableEnvelope{Data: req})
	if err != nil {
		return NewBookingError(CodeInvalidArgument, fmt.Sprintf("encode request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookSlot", bytes.NewReader(body))
	if err != nil {
		return NewBookingError(CodeUnknown, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+idToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewBookingError(CodeUnknown, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errBody callableErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		return NewBookingError(CodeUnknown, fmt.Sprintf("booking procedure returned %d", resp.StatusCode))
	}
	return NewBookingError(classifyCallableStatus(errBody.Error.Status), errBody.Error.Message)
}

func classifyCallableStatus(status string) string {
	switch status {
	case "FAILED_PRECONDITION":
		return CodeFailedPrecondition
	case "UNAUTHENTICATED":
		return CodeUnauthenticated
	case "INVALID_ARGUMENT":
		return CodeInvalidArgument
	default:
		return CodeUnknown
	}
}
