package records

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Record // userID -> records
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Record)}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = append(r.data[rec.UserID], rec)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, recordID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data[userID] {
		if rec.ID == recordID {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, userID, search string, limit, offset int) ([]Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	owned := r.data[userID]
	r.mu.RUnlock()

	needle := strings.ToLower(search)
	filtered := make([]Record, 0, len(owned))
	for _, rec := range owned {
		if needle == "" ||
			strings.Contains(strings.ToLower(rec.Title), needle) ||
			strings.Contains(strings.ToLower(rec.Content), needle) {
			filtered = append(filtered, rec)
		}
	}

	// Ties on created_at break on id so pages stay stable across queries.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	total := len(filtered)
	if offset >= total {
		return []Record{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := r.data[rec.UserID]
	for i := range owned {
		if owned[i].ID == rec.ID {
			rec.CreatedAt = owned[i].CreatedAt
			owned[i] = rec
			r.data[rec.UserID] = owned
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	owned := r.data[userID]
	for i := range owned {
		if owned[i].ID == recordID {
			r.data[userID] = append(owned[:i], owned[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
