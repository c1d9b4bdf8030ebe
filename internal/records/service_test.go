package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func seedRecord(t *testing.T, repo Repo, userID, id, title, content string, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), Record{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestServiceCreateGetRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "  Receita de bolo  ", "misture tudo", "testar depois")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Receita de bolo" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := svc.Get(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "misture tudo" || got.Comment != "testar depois" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name    string
		owner   string
		title   string
		content string
	}{
		{"missing owner", "", "t", "c"},
		{"blank title", "user-1", "   ", "c"},
		{"missing content", "user-1", "t", ""},
		{"title too long", "user-1", strings.Repeat("a", MaxTitleLen+1), "c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.owner, tc.title, tc.content, ""); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	// exactly max length is allowed
	if _, err := svc.Create(ctx, "user-1", strings.Repeat("a", MaxTitleLen), "c", ""); err != nil {
		t.Fatalf("max-length title rejected: %v", err)
	}
}

func TestServiceCrossOwnerAccessLooksLikeMissing(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	seedRecord(t, repo, "owner", "rec-1", "title", "content", time.Now().UTC())

	if _, err := svc.Get(ctx, "intruder", "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(ctx, "intruder", "rec-1", "t", "c", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "intruder", "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}

	// still intact for the owner
	if _, err := svc.Get(ctx, "owner", "rec-1"); err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
}

func TestServiceListPaginationPartition(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		seedRecord(t, repo, "user-1", fmt.Sprintf("rec-%d", i), fmt.Sprintf("title %d", i), "content", base.Add(time.Duration(i)*time.Minute))
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		out, err := svc.List(ctx, "user-1", page, 2, "")
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		if out.Total != 5 {
			t.Fatalf("page %d: expected total 5, got %d", page, out.Total)
		}
		for _, rec := range out.Records {
			if seen[rec.ID] {
				t.Fatalf("record %s returned on two pages", rec.ID)
			}
			seen[rec.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Fatalf("pages do not cover all records: %d", len(seen))
	}

	// newest first
	first, err := svc.List(ctx, "user-1", 1, 2, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if first.Records[0].ID != "rec-4" {
		t.Fatalf("expected newest record first, got %s", first.Records[0].ID)
	}
}

func TestServiceListPartitionWithEqualTimestamps(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	createdAt := time.Now().UTC()

	// Bulk imports land with identical created_at values.
	for i := 0; i < 6; i++ {
		seedRecord(t, repo, "user-1", fmt.Sprintf("rec-%d", i), fmt.Sprintf("title %d", i), "content", createdAt)
	}

	var got []string
	for page := 1; page <= 6; page++ {
		out, err := svc.List(ctx, "user-1", page, 1, "")
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		if len(out.Records) != 1 {
			t.Fatalf("page %d: expected 1 record, got %d", page, len(out.Records))
		}
		got = append(got, out.Records[0].ID)
	}

	seen := map[string]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("record %s returned on two pages: %v", id, got)
		}
		seen[id] = true
	}
	if len(seen) != 6 {
		t.Fatalf("pages do not cover all records: %v", got)
	}

	// Order among ties is fixed, so re-reading a page gives the same row.
	for page := 1; page <= 6; page++ {
		out, err := svc.List(ctx, "user-1", page, 1, "")
		if err != nil {
			t.Fatalf("List page %d again: %v", page, err)
		}
		if out.Records[0].ID != got[page-1] {
			t.Fatalf("page %d changed between reads: %s then %s", page, got[page-1], out.Records[0].ID)
		}
	}
}

func TestServiceListSearchIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	seedRecord(t, repo, "user-1", "rec-1", "Receita de Bolo", "farinha e ovos", now)
	seedRecord(t, repo, "user-1", "rec-2", "Anotações", "levar o BOLO amanhã", now.Add(time.Second))
	seedRecord(t, repo, "user-1", "rec-3", "Outra coisa", "nada a ver", now.Add(2*time.Second))

	out, err := svc.List(ctx, "user-1", 1, 20, "  bolo ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out.Total != 2 || len(out.Records) != 2 {
		t.Fatalf("expected 2 matches, got total=%d len=%d", out.Total, len(out.Records))
	}
}

func TestServiceListClampsPaging(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	seedRecord(t, repo, "user-1", "rec-1", "title", "content", time.Now().UTC())

	out, err := svc.List(ctx, "user-1", 0, 1000, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", out.Page)
	}
	if out.PageSize != 100 {
		t.Fatalf("expected page size clamped to 100, got %d", out.PageSize)
	}

	// page past the end is empty but reports the true total
	far, err := svc.List(ctx, "user-1", 50, 20, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(far.Records) != 0 || far.Total != 1 {
		t.Fatalf("expected empty page with total 1, got len=%d total=%d", len(far.Records), far.Total)
	}
}

func TestServiceUpdatePreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)

	seedRecord(t, repo, "user-1", "rec-1", "old", "old content", created)

	if err := svc.Update(ctx, "user-1", "rec-1", "new", "new content", "note"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, "user-1", "rec-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "new" || got.Comment != "note" {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed: %v != %v", got.CreatedAt, created)
	}
}
