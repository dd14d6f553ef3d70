// utils/firebase.go
package utils

import (
	"apnakam/config"
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FCMClient          *messaging.Client
	FirebaseAuthClient *auth.Client
)

// FirebaseInit initializes the Firebase App plus its Auth and Messaging clients.
func FirebaseInit(ctx context.Context) error {
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FirebaseAuthClient = authClient
	FCMClient = msgClient
	return nil
}
