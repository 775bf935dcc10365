package model

import "time"

// ContentType discriminates which collection a comment hangs off.
// Kept as a closed variant type: services switch over it exhaustively
// instead of passing raw strings around.
type ContentType string

const (
	ContentArticle  ContentType = "Article"
	ContentBlogPost ContentType = "BlogPost"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentArticle, ContentBlogPost:
		return true
	}
	return false
}

type Comment struct {
	ID             int64       `json:"id"`
	ContentType    ContentType `json:"contentType"`
	ContentID      int64       `json:"contentId"`
	UserID         int64       `json:"user"`
	Author         string      `json:"author"`
	Content        string      `json:"content"`
	Warning        *string     `json:"warning"`
	WarningAddedBy *int64      `json:"warningAddedBy"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`

	Poster *UserRef `json:"poster,omitempty"`
}
