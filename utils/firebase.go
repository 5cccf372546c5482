// utils/firebase.go
package utils

import (
	"context"
	"log"

	"studiobook/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	AuthClient      *auth.Client
	FirestoreClient *firestore.Client
)

// FirebaseInit initializes the Firebase App plus the Auth and Firestore clients.
// The repositories and the session resolver share these handles.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	conf := &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Firestore client: %v", err)
	}

	FirebaseApp = app
	AuthClient = authClient
	FirestoreClient = fsClient
}

// GetFirestoreClient returns the shared Firestore client.
func GetFirestoreClient() *firestore.Client {
	if FirestoreClient == nil {
		FirebaseInit()
	}
	return FirestoreClient
}

// GetAuthClient returns the shared Firebase Auth client.
func GetAuthClient() *auth.Client {
	if AuthClient == nil {
		FirebaseInit()
	}
	return AuthClient
}
