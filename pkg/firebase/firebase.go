// Package firebase bootstraps the Firebase Admin SDK for the optional
// federated login path. Only the auth client is used; the rest of the SDK
// stays untouched.
package firebase

import (
	"context"
	"fmt"
	"os"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// NewAuthClient builds an auth client from a service-account credentials
// file. The caller decides whether a missing client disables the feature or
// aborts startup.
func NewAuthClient(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file %s: %w", credentialsPath, err)
	}

	app, err := fb.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}
	return client, nil
}
