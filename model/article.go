package model

import "time"

// DefaultArticleCategory is applied when a create request omits the category.
const DefaultArticleCategory = "Other"

type Article struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Author           string    `json:"author"`
	Category         string    `json:"category"`
	CreatedBy        int64     `json:"createdBy"`
	CommentsDisabled bool      `json:"commentsDisabled"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Creator *UserRef `json:"creator,omitempty"`
}
