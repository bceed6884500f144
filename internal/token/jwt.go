package token

import (
	"fmt"
	"time"

	"github.com/dtroode/hms-console/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

// JWT implements SessionSigner backed by symmetric HMAC.
type JWT struct {
	secretKey string
	now       func() time.Time
}

// NewJWT creates a new session signer with the provided secret key.
func NewJWT(secretKey string) model.SessionSigner {
	return &JWT{secretKey: secretKey, now: time.Now}
}

const typeSession = "session"

// SignSession creates a token binding the session's user id, name, email
// and role.
// Sessions do not expire; they end on logout.
func (j *JWT) SignSession(session model.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  session.ID.String(),
			IssuedAt: jwt.NewNumericDate(j.now()),
		},
		Name:      session.Name,
		Email:     session.Email,
		Role:      session.Role,
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// VerifySession validates the token and extracts the signed identity.
func (j *JWT) VerifySession(tokenString string) (model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.Session{}, fmt.Errorf("session token is invalid")
	}
	if claims.TokenType != typeSession {
		return model.Session{}, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to parse session subject: %w", err)
	}

	return model.Session{
		ID:    userID,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
