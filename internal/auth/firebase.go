package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/pkazala/work20/internal/domain"
)

// idTokenVerifier is the part of *fbauth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type firebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier initialises the Firebase Admin SDK from a service
// account file and returns a Verifier for Firebase ID tokens.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (Verifier, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("auth.NewFirebaseVerifier: FIREBASE_CREDENTIALS_PATH is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("auth.NewFirebaseVerifier: init app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth.NewFirebaseVerifier: auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (domain.User, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth.firebaseVerifier.Verify: %w: %v", domain.ErrUnauthorized, err)
	}

	u := domain.User{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		u.Email = email
	}
	return u, nil
}
