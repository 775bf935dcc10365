package comment

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rbodarve/old-books/model"
	commentrepo "github.com/rbodarve/old-books/repository/comment"
)

type ErrCode string

const (
	ErrInvalidContentType ErrCode = "INVALID_CONTENT_TYPE"
	ErrBadInput           ErrCode = "BAD_INPUT"
	ErrTargetNotFound     ErrCode = "TARGET_NOT_FOUND"
	ErrDisabled           ErrCode = "COMMENTS_DISABLED"
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrForbidden          ErrCode = "FORBIDDEN"
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

// TargetRepo is the slice of a content repository a comment cares about:
// the disabled-flag guard and the moderation toggle. Article and blog-post
// repositories both satisfy it.
type TargetRepo interface {
	CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ToggleCommentsDisabled(ctx context.Context, id int64) (state bool, found bool, err error)
}

type Toggled struct {
	ContentType model.ContentType `json:"contentType"`
	ContentID   int64             `json:"contentId"`
	Disabled    bool              `json:"commentsDisabled"`
}

type Service interface {
	List(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error)
	ListByContentID(ctx context.Context, contentID int64) ([]model.Comment, error)
	ListAll(ctx context.Context) ([]model.Comment, error)
	Create(ctx context.Context, ct model.ContentType, contentID int64, content string, actor *model.User) (*model.Comment, error)
	Delete(ctx context.Context, commentID int64, actor *model.User) error
	AddWarning(ctx context.Context, commentID int64, warning string, actor *model.User) (*model.Comment, error)
	ToggleDisabled(ctx context.Context, ct model.ContentType, contentID int64) (*Toggled, error)
}

type service struct {
	db       *sql.DB
	cr       commentrepo.Repo
	articles TargetRepo
	blogs    TargetRepo
}

func New(db *sql.DB, cr commentrepo.Repo, articles, blogs TargetRepo) Service {
	return &service{db: db, cr: cr, articles: articles, blogs: blogs}
}

// target resolves a content type to its repository. The switch is the
// closed-variant dispatch: adding a content type means adding a case here.
func (s *service) target(ct model.ContentType) (TargetRepo, error) {
	switch ct {
	case model.ContentArticle:
		return s.articles, nil
	case model.ContentBlogPost:
		return s.blogs, nil
	default:
		return nil, makeErr(ErrInvalidContentType, "Invalid content type")
	}
}

func (s *service) List(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error) {
	if !ct.Valid() {
		return nil, makeErr(ErrInvalidContentType, "Invalid content type")
	}
	return s.cr.ListByTarget(ctx, ct, contentID)
}

func (s *service) ListByContentID(ctx context.Context, contentID int64) ([]model.Comment, error) {
	return s.cr.ListByContentID(ctx, contentID)
}

func (s *service) ListAll(ctx context.Context) ([]model.Comment, error) {
	return s.cr.ListAll(ctx)
}

// Create inserts the comment while holding a lock on the parent's
// disabled flag, so a concurrent toggle cannot slip a comment past it.
func (s *service) Create(ctx context.Context, ct model.ContentType, contentID int64, content string, actor *model.User) (c *model.Comment, err error) {
	tr, err := s.target(ct)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" || contentID <= 0 {
		return nil, makeErr(ErrBadInput, "Content and contentId are required")
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

	disabled, err := tr.CommentGuard(ctx, tx, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrTargetNotFound, string(ct)+" not found")
		}
		return nil, err
	}
	if disabled {
		return nil, makeErr(ErrDisabled, "Comments are disabled for this content")
	}

	c = &model.Comment{
		ContentType: ct,
		ContentID:   contentID,
		UserID:      actor.ID,
		Author:      actor.DisplayName(),
		Content:     content,
	}
	if err = s.cr.Insert(ctx, tx, c); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, commentID int64, actor *model.User) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	c, err := s.cr.ByIDForUpdate(ctx, tx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return makeErr(ErrNotFound, "Comment not found")
	}
	if c.UserID != actor.ID && !actor.Role.IsModerator() {
		return makeErr(ErrForbidden, "Not authorized to delete this comment")
	}

	if err = s.cr.Delete(ctx, tx, commentID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) AddWarning(ctx context.Context, commentID int64, warning string, actor *model.User) (*model.Comment, error) {
	warning = strings.TrimSpace(warning)
	if warning == "" {
		return nil, makeErr(ErrBadInput, "Warning message is required")
	}
	c, err := s.cr.SetWarning(ctx, commentID, warning, actor.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, makeErr(ErrNotFound, "Comment not found")
	}
	return c, nil
}

func (s *service) ToggleDisabled(ctx context.Context, ct model.ContentType, contentID int64) (*Toggled, error) {
	tr, err := s.target(ct)
	if err != nil {
		return nil, err
	}
	state, found, err := tr.ToggleCommentsDisabled(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, makeErr(ErrTargetNotFound, string(ct)+" not found")
	}
	return &Toggled{ContentType: ct, ContentID: contentID, Disabled: state}, nil
}
