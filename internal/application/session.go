package application

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// sessionTTL bounds how long an issued session token stays valid.
const sessionTTL = 24 * time.Hour

// SessionService verifies session tokens issued by the auth provider and, in
// dev mode, issues them locally. Tokens are HS256 JWTs; the subject claim
// carries the user id.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a SessionService with the given HMAC secret.
func NewSessionService(secret []byte) *SessionService {
	return &SessionService{secret: secret}
}

// Issue signs a new session token for the given identity.
func (s *SessionService) Issue(identity model.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"email": identity.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning the identity it
// carries. Any parse, signature, or expiry failure yields ErrInvalidSession.
func (s *SessionService) Verify(raw string) (model.Identity, error) {
	token, err := jwt.Parse(raw,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return model.Identity{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Identity{}, ErrInvalidSession
	}
	email, _ := claims["email"].(string)

	return model.Identity{UserID: sub, Email: email}, nil
}
