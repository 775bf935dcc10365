package review

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rbodarve/old-books/model"
	reviewrepo "github.com/rbodarve/old-books/repository/review"
)

type ErrCode string

const (
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrDisabled     ErrCode = "REVIEWS_DISABLED"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrForbidden    ErrCode = "FORBIDDEN"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// BookRepo is the slice of the book repository reviews need.
type BookRepo interface {
	ReviewGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ToggleReviewsDisabled(ctx context.Context, id int64) (state bool, found bool, err error)
}

type Toggled struct {
	BookID   int64 `json:"bookId"`
	Disabled bool  `json:"reviewsDisabled"`
}

type Service interface {
	Create(ctx context.Context, bookID int64, rating int, content string, actor *model.User) (*model.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	Stats(ctx context.Context, bookID int64) (*model.ReviewStats, error)
	Delete(ctx context.Context, reviewID int64, actor *model.User) error
	AddWarning(ctx context.Context, reviewID int64, warning string, actor *model.User) (*model.Review, error)
	ToggleDisabled(ctx context.Context, bookID int64) (*Toggled, error)
}

type service struct {
	db    *sql.DB
	rr    reviewrepo.Repo
	books BookRepo
}

func New(db *sql.DB, rr reviewrepo.Repo, books BookRepo) Service {
	return &service{db: db, rr: rr, books: books}
}

func (s *service) Create(ctx context.Context, bookID int64, rating int, content string, actor *model.User) (rv *model.Review, err error) {
	content = strings.TrimSpace(content)
	if bookID <= 0 || content == "" {
		return nil, makeErr(ErrBadInput, "Book ID, rating (1-5), and review content are required.")
	}
	if rating < 1 || rating > 5 {
		return nil, makeErr(ErrBadInput, "Rating must be between 1 and 5.")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	disabled, err := s.books.ReviewGuard(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBookNotFound, "Book not found")
		}
		return nil, err
	}
	if disabled {
		return nil, makeErr(ErrDisabled, "Reviews are disabled for this book")
	}

	rv = &model.Review{
		BookID:  bookID,
		UserID:  actor.ID,
		Author:  actor.DisplayName(),
		Rating:  rating,
		Content: content,
	}
	if err = s.rr.Insert(ctx, tx, rv); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return s.rr.ListByBook(ctx, bookID)
}

// Stats aggregates in-process over the book's ratings. The no-reviews case
// keeps the same shape with an empty distribution.
func (s *service) Stats(ctx context.Context, bookID int64) (*model.ReviewStats, error) {
	ratings, err := s.rr.RatingsByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	stats := &model.ReviewStats{RatingDistribution: []int{}}
	if len(ratings) == 0 {
		return stats, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	stats.ReviewCount = len(ratings)
	stats.AverageRating = float64(sum) / float64(len(ratings))
	stats.RatingDistribution = ratings
	return stats, nil
}

func (s *service) Delete(ctx context.Context, reviewID int64, actor *model.User) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rv, err := s.rr.ByIDForUpdate(ctx, tx, reviewID)
	if err != nil {
		return err
	}
	if rv == nil {
		return makeErr(ErrNotFound, "Review not found")
	}
	if rv.UserID != actor.ID && !actor.Role.IsModerator() {
		return makeErr(ErrForbidden, "Not authorized to delete this review")
	}

	if err = s.rr.Delete(ctx, tx, reviewID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) AddWarning(ctx context.Context, reviewID int64, warning string, actor *model.User) (*model.Review, error) {
	warning = strings.TrimSpace(warning)
	if warning == "" {
		return nil, makeErr(ErrBadInput, "Warning message is required")
	}
	rv, err := s.rr.SetWarning(ctx, reviewID, warning, actor.ID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, makeErr(ErrNotFound, "Review not found")
	}
	return rv, nil
}

func (s *service) ToggleDisabled(ctx context.Context, bookID int64) (*Toggled, error) {
	state, found, err := s.books.ToggleReviewsDisabled(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, makeErr(ErrNotFound, "Book not found")
	}
	return &Toggled{BookID: bookID, Disabled: state}, nil
}
