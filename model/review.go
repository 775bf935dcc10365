package model

import "time"

type Review struct {
	ID             int64     `json:"id"`
	BookID         int64     `json:"book"`
	UserID         int64     `json:"user"`
	Author         string    `json:"author"`
	Rating         int       `json:"rating"`
	Content        string    `json:"content"`
	Warning        *string   `json:"warning"`
	WarningAddedBy *int64    `json:"warningAddedBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Poster *UserRef `json:"poster,omitempty"`
}

// ReviewStats aggregates the reviews of one book.
type ReviewStats struct {
	AverageRating      float64 `json:"averageRating"`
	ReviewCount        int     `json:"reviewCount"`
	RatingDistribution []int   `json:"ratingDistribution"`
}
