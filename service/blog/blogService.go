package blog

import (
	"context"
	"errors"
	"strings"

	"github.com/rbodarve/old-books/model"
	blogrepo "github.com/rbodarve/old-books/repository/blog"
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

type Service interface {
	List(ctx context.Context) ([]model.BlogPost, error)
	GetByID(ctx context.Context, id int64) (*model.BlogPost, error)
	Create(ctx context.Context, title, content string, actor *model.User) (*model.BlogPost, error)
}

type service struct{ r blogrepo.Repo }

func New(r blogrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.BlogPost, error) {
	return s.r.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	p, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrNotFound, "Post not found")
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, title, content string, actor *model.User) (*model.BlogPost, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, makeErr(ErrBadInput, "Title and content are required")
	}

	p := &model.BlogPost{
		Title:     title,
		Content:   content,
		Author:    actor.DisplayName(),
		CreatedBy: actor.ID,
	}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	p.Creator = &model.UserRef{ID: actor.ID, Username: actor.Username, Role: actor.Role}
	return p, nil
}
