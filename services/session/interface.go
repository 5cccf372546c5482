// File: services/session/interface.go
package session

import (
	"context"

	"studiobook/config"
	userRepo "studiobook/database/repository/user"
	"studiobook/models"
	"studiobook/services/storage"

	"firebase.google.com/go/v4/auth"
)

// SessionService resolves identities from bearer tokens and manages the
// account lifecycle around them. Credentials themselves live with the
// external identity provider; this service never sees a password.
type SessionService interface {
	// Resolve verifies an ID token and loads the user's onboarding state.
	Resolve(ctx context.Context, idToken string) (models.Session, error)

	// SignOut revokes the user's refresh tokens. Existing ID tokens stay
	// valid until expiry; revocation bounds the window.
	SignOut(ctx context.Context, uid string) error

	// RequestPasswordReset asks the identity platform to email a reset link.
	// Unknown accounts are reported as success.
	RequestPasswordReset(ctx context.Context, email string) error

	// CompleteOnboarding creates the Users/{uid} profile document, uploading
	// the avatar first when one is supplied.
	CompleteOnboarding(ctx context.Context, sess models.Session, req models.OnboardingRequest) (*models.Profile, error)
}

// identityProvider is the slice of the identity platform's client this
// service uses.
type identityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Identity identityProvider
	Users    userRepo.UserRepository
	Avatars  storage.AvatarStore // optional
	Resets   PasswordResetSender
}

// NewDefaultSessionService wires the service onto the shared auth client.
func NewDefaultSessionService(authClient *auth.Client, users userRepo.UserRepository, avatars storage.AvatarStore) *DefaultSessionService {
	return &DefaultSessionService{
		Identity: authClient,
		Users:    users,
		Avatars:  avatars,
		Resets:   NewPasswordResetSender(config.AppConfig.FirebaseWebAPIKey),
	}
}
