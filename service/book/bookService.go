package book

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/rbodarve/old-books/model"
	bookrepo "github.com/rbodarve/old-books/repository/book"
)

type ErrCode string

const (
	ErrBadInput      ErrCode = "BAD_INPUT"
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrDuplicateISBN ErrCode = "DUPLICATE_ISBN"
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

type Filter = bookrepo.Filter

// CreateInput carries a fully-present create payload; pointer fields on
// UpdateInput distinguish "absent" from zero.
type CreateInput struct {
	Title           string
	Author          string
	ISBN            string
	PublicationDate time.Time
	Description     string
	Category        string
	Condition       string
	Price           float64
	Quantity        float64
	CoverImage      *string
}

type UpdateInput struct {
	Title           string
	Author          string
	ISBN            string
	PublicationDate *time.Time
	Description     string
	Category        string
	Condition       string
	Price           *float64
	Quantity        *float64
	CoverImage      string
}

type Service interface {
	List(ctx context.Context, f Filter) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, in CreateInput, actor *model.User) (*model.Book, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context, f Filter) ([]model.Book, error) {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return nil, makeErr(ErrBadInput, "Minimum price cannot be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return nil, makeErr(ErrBadInput, "Maximum price cannot be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, makeErr(ErrBadInput, "Maximum price must be greater than or equal to minimum price")
	}
	return s.r.List(ctx, f)
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound, "Book not found")
	}
	return b, nil
}

func validQuantity(q float64) bool {
	return q >= 0 && q == math.Trunc(q)
}

func (s *service) Create(ctx context.Context, in CreateInput, actor *model.User) (*model.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	isbn := strings.TrimSpace(in.ISBN)
	description := strings.TrimSpace(in.Description)
	if title == "" || author == "" || isbn == "" || description == "" ||
		in.Category == "" || in.Condition == "" || in.PublicationDate.IsZero() {
		return nil, makeErr(ErrBadInput, "All required fields must be provided")
	}
	if in.Price < 0 {
		return nil, makeErr(ErrBadInput, "Price must be a non-negative number")
	}
	if !validQuantity(in.Quantity) {
		return nil, makeErr(ErrBadInput, "Quantity must be a non-negative integer")
	}

	if existing, err := s.r.ByISBN(ctx, isbn); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, makeErr(ErrDuplicateISBN, "Book with this ISBN already exists")
	}

	b := &model.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		PublicationDate: in.PublicationDate,
		Description:     description,
		Category:        in.Category,
		Condition:       model.BookCondition(in.Condition),
		Price:           in.Price,
		Quantity:        int64(in.Quantity),
		CoverImage:      in.CoverImage,
		CreatedBy:       actor.ID,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update overwrites only the fields the payload carries: non-empty strings
// win, numeric fields win when present and valid. Absent fields stay put.
func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound, "Book not found")
	}

	if v := strings.TrimSpace(in.Title); v != "" {
		b.Title = v
	}
	if v := strings.TrimSpace(in.Author); v != "" {
		b.Author = v
	}
	if v := strings.TrimSpace(in.ISBN); v != "" {
		b.ISBN = v
	}
	if in.PublicationDate != nil && !in.PublicationDate.IsZero() {
		b.PublicationDate = *in.PublicationDate
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		b.Description = v
	}
	if in.Category != "" {
		b.Category = in.Category
	}
	if in.Condition != "" {
		b.Condition = model.BookCondition(in.Condition)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, makeErr(ErrBadInput, "Price must be a non-negative number")
		}
		b.Price = *in.Price
	}
	if in.Quantity != nil {
		if !validQuantity(*in.Quantity) {
			return nil, makeErr(ErrBadInput, "Quantity must be a non-negative integer")
		}
		b.Quantity = int64(*in.Quantity)
	}
	if in.CoverImage != "" {
		img := in.CoverImage
		b.CoverImage = &img
	}

	if err := s.r.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	found, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return makeErr(ErrNotFound, "Book not found")
	}
	return nil
}
