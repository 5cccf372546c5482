// File: services/session/reset_test.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(srv *httptest.Server) *identityToolkitSender {
	return &identityToolkitSender{
		baseURL:    srv.URL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestSendPasswordResetDispatchesOobCode(t *testing.T) {
	var got oobCodeRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestSender(srv).SendPasswordReset(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "PASSWORD_RESET", got.RequestType)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "test-key", gotKey)
}

func TestSendPasswordResetUnknownEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "EMAIL_NOT_FOUND"}})
	}))
	defer srv.Close()

	err := newTestSender(srv).SendPasswordReset(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, errEmailNotFound)
}

func TestSendPasswordResetRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "INVALID_EMAIL"}})
	}))
	defer srv.Close()

	err := newTestSender(srv).SendPasswordReset(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_EMAIL")
}

type fakeResetSender struct {
	sent    []string
	sendErr error
}

func (f *fakeResetSender) SendPasswordReset(ctx context.Context, email string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

func TestRequestPasswordResetSends(t *testing.T) {
	sender := &fakeResetSender{}
	svc := &DefaultSessionService{Identity: &fakeIdentity{}, Users: &fakeUserRepo{}, Resets: sender}

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "asha@example.com"))
	assert.Equal(t, []string{"asha@example.com"}, sender.sent)
}

func TestRequestPasswordResetHidesUnknownAccounts(t *testing.T) {
	sender := &fakeResetSender{sendErr: errEmailNotFound}
	svc := &DefaultSessionService{Identity: &fakeIdentity{}, Users: &fakeUserRepo{}, Resets: sender}

	assert.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
}

func TestRequestPasswordResetSurfacesDeliveryFailure(t *testing.T) {
	sender := &fakeResetSender{sendErr: errors.New("gateway down")}
	svc := &DefaultSessionService{Identity: &fakeIdentity{}, Users: &fakeUserRepo{}, Resets: sender}

	assert.Error(t, svc.RequestPasswordReset(context.Background(), "asha@example.com"))
}
