package article

import (
	"context"
	"errors"
	"strings"

	"github.com/rbodarve/old-books/model"
	articlerepo "github.com/rbodarve/old-books/repository/article"
)

type ErrCode string

const (
	ErrBadInput ErrCode = "BAD_INPUT"
	ErrNotFound ErrCode = "NOT_FOUND"
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

type CreateInput struct {
	Title    string
	Content  string
	Category string
}

type UpdateInput struct {
	Title    string
	Content  string
	Category string
}

type Service interface {
	List(ctx context.Context) ([]model.Article, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, in CreateInput, actor *model.User) (*model.Article, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*model.Article, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r articlerepo.Repo }

func New(r articlerepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Article, error) {
	return s.r.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, makeErr(ErrNotFound, "Article not found")
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, in CreateInput, actor *model.User) (*model.Article, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, makeErr(ErrBadInput, "Title and content required")
	}
	category := in.Category
	if category == "" {
		category = model.DefaultArticleCategory
	}

	a := &model.Article{
		Title:     title,
		Content:   content,
		Author:    actor.DisplayName(),
		Category:  category,
		CreatedBy: actor.ID,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, err
	}
	a.Creator = &model.UserRef{ID: actor.ID, Username: actor.Username, Role: actor.Role}
	return a, nil
}

// Update is gated to admins at the route; role is authoritative and no
// ownership check applies.
func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*model.Article, error) {
	a, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, makeErr(ErrNotFound, "Article not found")
	}

	if v := strings.TrimSpace(in.Title); v != "" {
		a.Title = v
	}
	if v := strings.TrimSpace(in.Content); v != "" {
		a.Content = v
	}
	if in.Category != "" {
		a.Category = in.Category
	}

	if err := s.r.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	found, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return makeErr(ErrNotFound, "Article not found")
	}
	return nil
}
