package records

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for OCR records.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// List returns one page of the owner's records, optionally filtered by a
// case-insensitive substring match on title or content.
func (s *Service) List(ctx context.Context, ownerID string, page, pageSize int, search string) (Page, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Page{}, ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	search = strings.TrimSpace(search)

	recs, total, err := s.Repo.List(ctx, ownerID, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}
	return Page{Records: recs, Total: total, Page: page, PageSize: pageSize}, nil
}

// Create persists a new record under the owner.
func (s *Service) Create(ctx context.Context, ownerID, title, content, comment string) (Record, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Record{}, ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" || content == "" || len(title) > MaxTitleLen {
		return Record{}, ErrInvalidInput
	}

	rec := Record{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get fetches a record owned by ownerID.
func (s *Service) Get(ctx context.Context, ownerID, recordID string) (Record, error) {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(recordID) == "" {
		return Record{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, ownerID, recordID)
}

// Update rewrites title, content and comment of an owned record.
func (s *Service) Update(ctx context.Context, ownerID, recordID, title, content, comment string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(recordID) == "" {
		return ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" || content == "" || len(title) > MaxTitleLen {
		return ErrInvalidInput
	}

	return s.Repo.Update(ctx, Record{
		ID:      recordID,
		UserID:  ownerID,
		Title:   title,
		Content: content,
		Comment: comment,
	})
}

// Delete removes an owned record.
func (s *Service) Delete(ctx context.Context, ownerID, recordID string) error {
	if strings.TrimSpace(ownerID) == "" || strings.TrimSpace(recordID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, ownerID, recordID)
}
