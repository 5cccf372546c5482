// File: services/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studiobook/models"

	"go.uber.org/zap"
)

var (
	// ErrUnauthenticated reports an invalid, expired, or revoked token.
	ErrUnauthenticated = errors.New("invalid or expired session")
	// ErrAlreadyOnboarded rejects a second onboarding for the same user.
	ErrAlreadyOnboarded = errors.New("profile already exists")
)

func (s *DefaultSessionService) Resolve(ctx context.Context, idToken string) (models.Session, error) {
	token, err := s.Identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	sess := models.Session{
		UID:     token.UID,
		IDToken: idToken,
	}
	if email, ok := token.Claims["email"].(string); ok {
		sess.Email = email
	}

	profile, err := s.Users.Get(ctx, token.UID)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to load profile for %s: %w", token.UID, err)
	}
	sess.Onboarded = profile != nil
	sess.Profile = profile
	return sess, nil
}

func (s *DefaultSessionService) SignOut(ctx context.Context, uid string) error {
	if err := s.Identity.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke tokens for %s: %w", uid, err)
	}
	return nil
}

func (s *DefaultSessionService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.Resets.SendPasswordReset(ctx, email); err != nil {
		// An unregistered email looks exactly like a delivered one.
		if errors.Is(err, errEmailNotFound) {
			return nil
		}
		return fmt.Errorf("failed to request password reset: %w", err)
	}
	return nil
}

func (s *DefaultSessionService) CompleteOnboarding(ctx context.Context, sess models.Session, req models.OnboardingRequest) (*models.Profile, error) {
	if sess.Onboarded {
		return nil, ErrAlreadyOnboarded
	}

	profile := models.Profile{
		UID:         sess.UID,
		Name:        req.Name,
		Email:       sess.Email,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
	}

	// Avatar upload is best effort; a failed upload never blocks onboarding.
	if req.AvatarData != "" && s.Avatars != nil {
		url, err := s.Avatars.UploadAvatar(ctx, sess.UID, req.AvatarData)
		if err != nil {
			zap.L().Warn("avatar upload failed, creating profile without image",
				zap.String("uid", sess.UID), zap.Error(err))
		} else {
			profile.ProfileImage = url
		}
	}

	if err := s.Users.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile for %s: %w", sess.UID, err)
	}
	return &profile, nil
}
