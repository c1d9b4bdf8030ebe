package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGUsersRepo implements UsersRepo using Postgres.
type PGUsersRepo struct {
	DB *sql.DB
}

func (r *PGUsersRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGUsersRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGUsersRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, name, email, password_hash, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGUsersRepo) UpdateName(ctx context.Context, userID, name string) error {
	const query = `
UPDATE users
SET name = $1, updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, name, userID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrUserNotFound)
}

func (r *PGUsersRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	const query = `
UPDATE users
SET password_hash = $1, updated_at = now()
WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrUserNotFound)
}

func (r *PGUsersRepo) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	return requireRow(res, ErrUserNotFound)
}

func (r *PGUsersRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}

// PGTokensRepo implements TokensRepo using Postgres.
type PGTokensRepo struct {
	DB *sql.DB
}

func (r *PGTokensRepo) Create(ctx context.Context, userID, token string) error {
	const query = `
INSERT INTO session_tokens (user_id, token)
VALUES ($1, $2)`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

func (r *PGTokensRepo) Exists(ctx context.Context, token string) (bool, error) {
	const query = `SELECT 1 FROM session_tokens WHERE token = $1 LIMIT 1`
	var one int
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PGTokensRepo) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM session_tokens WHERE token = $1`
	res, err := r.DB.ExecContext(ctx, query, token)
	if err != nil {
		return err
	}
	return requireRow(res, ErrTokenNotFound)
}

func (r *PGTokensRepo) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM session_tokens WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func requireRow(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}

var (
	_ UsersRepo  = (*PGUsersRepo)(nil)
	_ TokensRepo = (*PGTokensRepo)(nil)
)
