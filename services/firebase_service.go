package services

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	messagingClient *messaging.Client
	messagingOnce   sync.Once
	messagingErr    error
)

// GetMessagingClient returns the Firebase Cloud Messaging client built from
// the service account file at credPath. The client is created once.
func GetMessagingClient(ctx context.Context, credPath string) (*messaging.Client, error) {
	messagingOnce.Do(func() {
		if credPath == "" {
			messagingErr = fmt.Errorf("FIREBASE_CREDENTIALS_PATH not set")
			return
		}

		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
		if err != nil {
			messagingErr = fmt.Errorf("error initializing Firebase app: %w", err)
			return
		}

		messagingClient, messagingErr = app.Messaging(ctx)
		if messagingErr != nil {
			messagingErr = fmt.Errorf("error initializing FCM client: %w", messagingErr)
		}
	})

	return messagingClient, messagingErr
}
