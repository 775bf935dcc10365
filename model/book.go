package model

import "time"

type BookCondition string

const (
	ConditionLikeNew BookCondition = "Like New"
	ConditionGood    BookCondition = "Good"
	ConditionFair    BookCondition = "Fair"
	ConditionPoor    BookCondition = "Poor"
)

type Book struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	ISBN            string        `json:"isbn"`
	PublicationDate time.Time     `json:"publicationDate"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	Condition       BookCondition `json:"condition"`
	Price           float64       `json:"price"`
	Quantity        int64         `json:"quantity"`
	CoverImage      *string       `json:"coverImage"`
	CreatedBy       int64         `json:"createdBy"`
	ReviewsDisabled bool          `json:"reviewsDisabled"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	// Populated on detail lookups.
	Creator *UserRef `json:"creator,omitempty"`
}

// UserRef is the public slice of a user joined onto content rows.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}
