package book

import "time"

type CreateBookReq struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	ISBN            string  `json:"isbn" validate:"required"`
	PublicationDate string  `json:"publicationDate" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Condition       string  `json:"condition" validate:"required"`
	Price           float64 `json:"price"`
	Quantity        float64 `json:"quantity"`
	CoverImage      *string `json:"coverImage"`
}

// UpdateBookReq is all-optional; absent fields leave the record untouched.
type UpdateBookReq struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	PublicationDate string   `json:"publicationDate"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Condition       string   `json:"condition"`
	Price           *float64 `json:"price"`
	Quantity        *float64 `json:"quantity"`
	CoverImage      string   `json:"coverImage"`
}

// parseDate accepts the date-only form the catalog UI sends as well as
// full RFC 3339 timestamps.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
