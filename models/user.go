package models

import "time"

// Profile is the Users/{uid} document. Its existence is the onboarding marker:
// an authenticated user without a profile has not completed onboarding.
type Profile struct {
	UID          string    `firestore:"-" json:"uid"`
	Name         string    `firestore:"name" json:"name"`
	Email        string    `firestore:"email" json:"email"`
	PhoneNumber  string    `firestore:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	ProfileImage string    `firestore:"profileImage,omitempty" json:"profileImage,omitempty"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}

// Session is the resolved identity for one authenticated request.
type Session struct {
	UID       string   `json:"uid"`
	Email     string   `json:"email"`
	IDToken   string   `json:"-"`
	Onboarded bool     `json:"onboarded"`
	Profile   *Profile `json:"profile,omitempty"`
}

// OnboardingRequest is the payload completing a new user's profile.
type OnboardingRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	AvatarData  string `json:"avatarData,omitempty"` // base64 image, optional
}
