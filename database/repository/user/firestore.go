// File: database/repository/user/firestore.go
package userRepo

import (
	"context"

	"studiobook/models"
	"studiobook/utils"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "Users"

type firestoreUserRepo struct {
	client *firestore.Client
}

// NewFirestoreUserRepo constructs a UserRepository over the shared
// Firestore client.
func NewFirestoreUserRepo() UserRepository {
	return &firestoreUserRepo{client: utils.GetFirestoreClient()}
}

func (r *firestoreUserRepo) Get(ctx context.Context, uid string) (*models.Profile, error) {
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, err
	}
	profile.UID = uid
	return &profile, nil
}

func (r *firestoreUserRepo) Create(ctx context.Context, profile models.Profile) error {
	_, err := r.client.Collection(usersCollection).Doc(profile.UID).Set(ctx, profile)
	return err
}
