package storage

import (
	"context"
	"fmt"
	"strings"

	"studiobook/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// AvatarStore uploads profile images and returns their public URL.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, uid, dataURI string) (string, error)
	DeleteAvatar(ctx context.Context, uid string) error
}

type cloudinaryAvatarStore struct {
	cld *cloudinary.Cloudinary
}

// NewAvatarStore builds a Cloudinary-backed store from CLOUDINARY_URL.
func NewAvatarStore() (AvatarStore, error) {
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &cloudinaryAvatarStore{cld: cld}, nil
}

// UploadAvatar stores a base64 data-URI image under avatars/{uid}, replacing
// any previous avatar for the same user.
func (s *cloudinaryAvatarStore) UploadAvatar(ctx context.Context, uid, dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image/") {
		return "", fmt.Errorf("avatar payload is not an image data URI")
	}
	overwrite := true
	result, err := s.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:    "avatars",
		PublicID:  uid,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no avatar URL returned")
	}
	return result.SecureURL, nil
}

func (s *cloudinaryAvatarStore) DeleteAvatar(ctx context.Context, uid string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: "avatars/" + uid}); err != nil {
		return fmt.Errorf("failed to delete avatar: %w", err)
	}
	return nil
}
