package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity embedded in both token classes.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Manager mints and verifies the two token classes. Access and refresh
// tokens are signed with independent secrets so a leaked access secret
// cannot forge refresh tokens.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// MintAccess issues a short-lived access token for the given identity.
func (m *Manager) MintAccess(userID, email string) (string, error) {
	return mint(userID, email, m.accessSecret, m.accessTTL)
}

// MintRefresh issues a long-lived refresh token for the given identity.
func (m *Manager) MintRefresh(userID, email string) (string, error) {
	return mint(userID, email, m.refreshSecret, m.refreshTTL)
}

// VerifyAccess validates an access token and returns its claims.
func (m *Manager) VerifyAccess(token string) (Claims, error) {
	return verify(token, m.accessSecret)
}

// VerifyRefresh validates a refresh token signature and expiry. Callers
// must still check the persisted token set before honoring it.
func (m *Manager) VerifyRefresh(token string) (Claims, error) {
	return verify(token, m.refreshSecret)
}

func mint(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenString string, secret []byte) (Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
