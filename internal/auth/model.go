package auth

import "time"

// User is an account holder. PasswordHash never leaves this package.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionToken is one issued refresh token. A user may hold several
// concurrent sessions, one row each.
type SessionToken struct {
	ID        int64
	UserID    string
	Token     string
	CreatedAt time.Time
}

// TokenPair is returned by register and login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
