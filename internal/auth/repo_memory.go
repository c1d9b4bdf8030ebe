package auth

import (
	"context"
	"sync"
)

// MemoryUsersRepo is an in-memory implementation of UsersRepo for dev and tests.
type MemoryUsersRepo struct {
	mu    sync.RWMutex
	users map[string]User // id -> user
}

func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{users: make(map[string]User)}
}

func (r *MemoryUsersRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *MemoryUsersRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryUsersRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryUsersRepo) UpdateName(ctx context.Context, userID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Name = name
	r.users[userID] = user
	return nil
}

func (r *MemoryUsersRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	r.users[userID] = user
	return nil
}

func (r *MemoryUsersRepo) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

// MemoryTokensRepo is an in-memory implementation of TokensRepo.
type MemoryTokensRepo struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> userID
}

func NewMemoryTokensRepo() *MemoryTokensRepo {
	return &MemoryTokensRepo{tokens: make(map[string]string)}
}

func (r *MemoryTokensRepo) Create(ctx context.Context, userID, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *MemoryTokensRepo) Exists(ctx context.Context, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}

func (r *MemoryTokensRepo) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return ErrTokenNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *MemoryTokensRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.tokens {
		if owner == userID {
			delete(r.tokens, token)
		}
	}
	return nil
}

var (
	_ UsersRepo  = (*MemoryUsersRepo)(nil)
	_ TokensRepo = (*MemoryTokensRepo)(nil)
)
