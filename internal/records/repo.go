package records

import "context"

// Repo defines persistence operations for OCR records. Every operation
// is owner-scoped in the query itself; an id alone never selects a row.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, userID, recordID string) (Record, error)
	// List returns records newest-first, filtered by the owner and an
	// optional case-insensitive substring match on title or content,
	// together with the pre-pagination count of the filtered set.
	List(ctx context.Context, userID, search string, limit, offset int) ([]Record, int, error)
	// Update returns ErrNotFound when (id, owner) matches zero rows.
	Update(ctx context.Context, rec Record) error
	// Delete returns ErrNotFound when (id, owner) matches zero rows.
	Delete(ctx context.Context, userID, recordID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
