package auth

import "context"

// UsersRepo defines persistence operations for accounts.
type UsersRepo interface {
	// Create inserts a new user. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	UpdateName(ctx context.Context, userID, name string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	// Delete removes the user row. Sessions and records cascade.
	Delete(ctx context.Context, userID string) error
}

// TokensRepo is the persisted refresh-token allow-list.
type TokensRepo interface {
	Create(ctx context.Context, userID, token string) error
	Exists(ctx context.Context, token string) (bool, error)
	// Delete removes a token. Returns ErrTokenNotFound when no row matched.
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
