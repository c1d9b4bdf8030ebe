package records

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO ocr_records (id, user_id, title, content, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var comment sql.NullString
	if rec.Comment != "" {
		comment = sql.NullString{String: rec.Comment, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Title,
		rec.Content,
		comment,
		rec.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	const query = `
SELECT id, user_id, title, content, comment, created_at
FROM ocr_records
WHERE id = $1 AND user_id = $2
LIMIT 1`

	var rec Record
	var comment sql.NullString
	err := r.DB.QueryRowContext(ctx, query, recordID, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.Content,
		&comment,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if comment.Valid {
		rec.Comment = comment.String
	}
	return rec, nil
}

func (r *PGRepo) List(ctx context.Context, userID, search string, limit, offset int) ([]Record, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	pattern := "%" + search + "%"

	const countQuery = `
SELECT count(*)
FROM ocr_records
WHERE user_id = $1 AND ($2 = '' OR title ILIKE $3 OR content ILIKE $3)`

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, userID, search, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
SELECT id, user_id, title, content, comment, created_at
FROM ocr_records
WHERE user_id = $1 AND ($2 = '' OR title ILIKE $3 OR content ILIKE $3)
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5`

	rows, err := r.DB.QueryContext(ctx, listQuery, userID, search, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		var comment sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Title,
			&rec.Content,
			&comment,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		if comment.Valid {
			rec.Comment = comment.String
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE ocr_records
SET title = $1, content = $2, comment = $3
WHERE id = $4 AND user_id = $5`

	var comment sql.NullString
	if rec.Comment != "" {
		comment = sql.NullString{String: rec.Comment, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, rec.Title, rec.Content, comment, rec.ID, rec.UserID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, userID, recordID string) error {
	const query = `DELETE FROM ocr_records WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, recordID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM ocr_records WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
