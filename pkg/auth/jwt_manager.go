package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingHeader = errors.New("missing Authorization header")
	ErrMalformedAuth = errors.New("invalid Authorization header")
)

type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewJWTManager returns a manager signing HS256 tokens with secret.
// A zero duration issues tokens without an exp claim.
func NewJWTManager(secret string, duration time.Duration) *JWTManager {
	return &JWTManager{secretKey: secret, tokenDuration: duration}
}

// Generate creates a signed token for userID
func (m *JWTManager) Generate(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.tokenDuration))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Verify parses and validates the token and its signature
func (m *JWTManager) Verify(accessToken string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry returns the token expiration time, zero when the token never expires
func (m *JWTManager) Expiry(accessToken string) (time.Time, error) {
	claims, err := m.Verify(accessToken)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// ExtractTokenFromHeader reads the token from the Authorization header.
// Both "Bearer <token>" and a bare "<token>" are accepted.
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	hdr := strings.TrimSpace(r.Header.Get("Authorization"))
	if hdr == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) == 2 {
		if !strings.EqualFold(parts[0], "Bearer") {
			return "", ErrMalformedAuth
		}
		token := strings.TrimSpace(parts[1])
		if token == "" || strings.ContainsAny(token, " \t") {
			return "", ErrMalformedAuth
		}
		return token, nil
	}

	if strings.EqualFold(hdr, "Bearer") {
		return "", ErrMalformedAuth
	}
	return hdr, nil
}
