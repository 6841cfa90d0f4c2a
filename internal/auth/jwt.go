package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/pkazala/work20/internal/domain"
)

// Claims is the HS256 token payload accepted by the JWT verifier.
// The subject is the administrator's UID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a Verifier for HS256 tokens signed with secret, for
// deployments that do not use Firebase.
func NewJWTVerifier(secret string) (Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth.NewJWTVerifier: JWT_SECRET is required")
	}
	return &jwtVerifier{secret: []byte(secret)}, nil
}

func (v *jwtVerifier) Verify(_ context.Context, token string) (domain.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.User{}, fmt.Errorf("auth.jwtVerifier.Verify: %w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return domain.User{}, fmt.Errorf("auth.jwtVerifier.Verify: %w: token has no subject", domain.ErrUnauthorized)
	}
	return domain.User{UID: claims.Subject, Email: claims.Email}, nil
}
