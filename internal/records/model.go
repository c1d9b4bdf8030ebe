package records

import "time"

// MaxTitleLen matches the varchar(100) column constraint.
const MaxTitleLen = 100

// Record is one saved OCR capture. Content is the structured document
// serialized as text; the store treats it as an opaque blob.
type Record struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Comment   string
	CreatedAt time.Time
}

// Page is one page of a filtered listing. Total counts the filtered set
// before pagination so clients can compute "has more".
type Page struct {
	Records  []Record
	Total    int
	Page     int
	PageSize int
}
