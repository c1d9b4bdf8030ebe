package records

import "time"

// RecordResponse is the outward-facing representation of a record.
type RecordResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// PageResponse wraps one page of records.
type PageResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

func toResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
	}
}

func toPageResponse(page Page) PageResponse {
	out := make([]RecordResponse, 0, len(page.Records))
	for _, rec := range page.Records {
		out = append(out, toResponse(rec))
	}
	return PageResponse{
		Records: out,
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.PageSize,
	}
}
