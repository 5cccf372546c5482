// File: services/session/reset.go
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PasswordResetSender dispatches the password reset email for an account.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email string) error
}

const identityToolkitBaseURL = "https://identitytoolkit.googleapis.com/v1"

// errEmailNotFound is swallowed by the service so the endpoint never reveals
// which emails are registered.
var errEmailNotFound = errors.New("email not registered")

type identityToolkitSender struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPasswordResetSender builds a sender over the Identity Toolkit REST API.
// The sendOobCode call mints the reset link and delivers the templated email
// in one step, unlike the admin SDK which only mints the link.
func NewPasswordResetSender(apiKey string) PasswordResetSender {
	return &identityToolkitSender{
		baseURL:    identityToolkitBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type oobCodeErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *identityToolkitSender) SendPasswordReset(ctx context.Context, email string) error {
	body, err := json.Marshal(oobCodeRequest{RequestType: "PASSWORD_RESET", Email: email})
	if err != nil {
		return fmt.Errorf("encode reset request: %w", err)
	}

	endpoint := s.baseURL + "/accounts:sendOobCode?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reset email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errBody oobCodeErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		return fmt.Errorf("reset email request returned %d", resp.StatusCode)
	}
	if errBody.Error.Message == "EMAIL_NOT_FOUND" {
		return errEmailNotFound
	}
	return fmt.Errorf("reset email request rejected: %s", errBody.Error.Message)
}
