package comment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rbodarve/old-books/model"
	commentrepo "github.com/rbodarve/old-books/repository/comment"
	commentsvc "github.com/rbodarve/old-books/service/comment"
)

type commentRepoMock struct {
	listByTargetFn    func(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error)
	listByContentIDFn func(ctx context.Context, contentID int64) ([]model.Comment, error)
	listAllFn         func(ctx context.Context) ([]model.Comment, error)
	insertFn          func(ctx context.Context, tx *sql.Tx, c *model.Comment) error
	byIDForUpdateFn   func(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error)
	deleteFn          func(ctx context.Context, tx *sql.Tx, id int64) error
	setWarningFn      func(ctx context.Context, id int64, warning string, addedBy int64) (*model.Comment, error)
}

var _ commentrepo.Repo = (*commentRepoMock)(nil)

func (m *commentRepoMock) ListByTarget(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error) {
	return m.listByTargetFn(ctx, ct, contentID)
}
func (m *commentRepoMock) ListByContentID(ctx context.Context, contentID int64) ([]model.Comment, error) {
	return m.listByContentIDFn(ctx, contentID)
}
func (m *commentRepoMock) ListAll(ctx context.Context) ([]model.Comment, error) {
	return m.listAllFn(ctx)
}
func (m *commentRepoMock) Insert(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
	return m.insertFn(ctx, tx, c)
}
func (m *commentRepoMock) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error) {
	return m.byIDForUpdateFn(ctx, tx, id)
}
func (m *commentRepoMock) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	return m.deleteFn(ctx, tx, id)
}
func (m *commentRepoMock) SetWarning(ctx context.Context, id int64, warning string, addedBy int64) (*model.Comment, error) {
	return m.setWarningFn(ctx, id, warning, addedBy)
}

type targetMock struct {
	guardFn  func(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	toggleFn func(ctx context.Context, id int64) (bool, bool, error)
}

func (m *targetMock) CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return m.guardFn(ctx, tx, id)
}
func (m *targetMock) ToggleCommentsDisabled(ctx context.Context, id int64) (bool, bool, error) {
	return m.toggleFn(ctx, id)
}

// newTxDB returns a *sql.DB whose Begin/Commit/Rollback are scripted; the
// repo mocks never touch the tx themselves.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func actor() *model.User {
	return &model.User{ID: 10, Username: "reader", Email: "reader@example.com", Role: model.RoleUser}
}

func TestList_InvalidContentType(t *testing.T) {
	s := commentsvc.New(nil, &commentRepoMock{}, &targetMock{}, &targetMock{})
	_, err := s.List(context.Background(), "Podcast", 1)
	require.Error(t, err)
	require.Equal(t, commentsvc.ErrInvalidContentType, commentsvc.Code(err))
}

func TestCreate_InvalidContentType(t *testing.T) {
	s := commentsvc.New(nil, &commentRepoMock{}, &targetMock{}, &targetMock{})
	_, err := s.Create(context.Background(), "Podcast", 1, "hi", actor())
	require.Equal(t, commentsvc.ErrInvalidContentType, commentsvc.Code(err))
}

func TestCreate_EmptyContent(t *testing.T) {
	s := commentsvc.New(nil, &commentRepoMock{}, &targetMock{}, &targetMock{})
	_, err := s.Create(context.Background(), model.ContentArticle, 1, "   ", actor())
	require.Equal(t, commentsvc.ErrBadInput, commentsvc.Code(err))
}

func TestCreate_TargetNotFound(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	articles := &targetMock{
		guardFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
			return false, sql.ErrNoRows
		},
	}
	s := commentsvc.New(db, &commentRepoMock{}, articles, &targetMock{})

	_, err := s.Create(context.Background(), model.ContentArticle, 99, "hello", actor())
	require.Error(t, err)
	require.Equal(t, commentsvc.ErrTargetNotFound, commentsvc.Code(err))
	require.Equal(t, "Article not found", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DisabledTarget_NothingInserted(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	inserted := false
	cr := &commentRepoMock{
		insertFn: func(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
			inserted = true
			return nil
		},
	}
	blogs := &targetMock{
		guardFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
			return true, nil
		},
	}
	s := commentsvc.New(db, cr, &targetMock{}, blogs)

	_, err := s.Create(context.Background(), model.ContentBlogPost, 5, "hello", actor())
	require.Error(t, err)
	require.Equal(t, commentsvc.ErrDisabled, commentsvc.Code(err))
	require.False(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Success_AuthorSnapshot(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var stored *model.Comment
	cr := &commentRepoMock{
		insertFn: func(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
			c.ID = 77
			c.CreatedAt = time.Now()
			stored = c
			return nil
		},
	}
	articles := &targetMock{
		guardFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
			return false, nil
		},
	}
	s := commentsvc.New(db, cr, articles, &targetMock{})

	c, err := s.Create(context.Background(), model.ContentArticle, 5, "  nice read  ", actor())
	require.NoError(t, err)
	require.Equal(t, int64(77), c.ID)
	require.Equal(t, "reader", stored.Author)
	require.Equal(t, "nice read", stored.Content)
	require.Equal(t, model.ContentArticle, stored.ContentType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_EmailFallbackAuthor(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var stored *model.Comment
	cr := &commentRepoMock{
		insertFn: func(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
			stored = c
			return nil
		},
	}
	articles := &targetMock{
		guardFn: func(ctx context.Context, tx *sql.Tx, id int64) (bool, error) { return false, nil },
	}
	s := commentsvc.New(db, cr, articles, &targetMock{})

	_, err := s.Create(context.Background(), model.ContentArticle, 5, "hi",
		&model.User{ID: 2, Email: "anon@example.com", Role: model.RoleUser})
	require.NoError(t, err)
	require.Equal(t, "anon@example.com", stored.Author)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	cr := &commentRepoMock{
		byIDForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error) {
			return nil, nil
		},
	}
	s := commentsvc.New(db, cr, &targetMock{}, &targetMock{})

	err := s.Delete(context.Background(), 1, actor())
	require.Equal(t, commentsvc.ErrNotFound, commentsvc.Code(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Authorization(t *testing.T) {
	owner := &model.User{ID: 10, Role: model.RoleUser}
	stranger := &model.User{ID: 11, Role: model.RoleUser}
	manager := &model.User{ID: 12, Role: model.RoleManager}
	admin := &model.User{ID: 13, Role: model.RoleAdmin}

	cases := []struct {
		name    string
		actor   *model.User
		allowed bool
	}{
		{"owner", owner, true},
		{"stranger", stranger, false},
		{"manager", manager, true},
		{"admin", admin, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTxDB(t)
			mock.ExpectBegin()
			if tc.allowed {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			deleted := false
			cr := &commentRepoMock{
				byIDForUpdateFn: func(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error) {
					return &model.Comment{ID: id, UserID: owner.ID}, nil
				},
				deleteFn: func(ctx context.Context, tx *sql.Tx, id int64) error {
					deleted = true
					return nil
				},
			}
			s := commentsvc.New(db, cr, &targetMock{}, &targetMock{})

			err := s.Delete(context.Background(), 50, tc.actor)
			if tc.allowed {
				require.NoError(t, err)
				require.True(t, deleted)
			} else {
				require.Equal(t, commentsvc.ErrForbidden, commentsvc.Code(err))
				require.False(t, deleted)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAddWarning_Blank(t *testing.T) {
	s := commentsvc.New(nil, &commentRepoMock{}, &targetMock{}, &targetMock{})
	_, err := s.AddWarning(context.Background(), 1, "   ", actor())
	require.Equal(t, commentsvc.ErrBadInput, commentsvc.Code(err))
}

func TestAddWarning_SetsModerator(t *testing.T) {
	cr := &commentRepoMock{
		setWarningFn: func(ctx context.Context, id int64, warning string, addedBy int64) (*model.Comment, error) {
			w := warning
			return &model.Comment{ID: id, Warning: &w, WarningAddedBy: &addedBy}, nil
		},
	}
	s := commentsvc.New(nil, cr, &targetMock{}, &targetMock{})

	mod := &model.User{ID: 9, Role: model.RoleManager}
	c, err := s.AddWarning(context.Background(), 3, " tone it down ", mod)
	require.NoError(t, err)
	require.Equal(t, "tone it down", *c.Warning)
	require.Equal(t, int64(9), *c.WarningAddedBy)
}

func TestToggleDisabled_FlipsAndReports(t *testing.T) {
	state := false
	articles := &targetMock{
		toggleFn: func(ctx context.Context, id int64) (bool, bool, error) {
			state = !state
			return state, true, nil
		},
	}
	s := commentsvc.New(nil, &commentRepoMock{}, articles, &targetMock{})
	ctx := context.Background()

	out, err := s.ToggleDisabled(ctx, model.ContentArticle, 8)
	require.NoError(t, err)
	require.True(t, out.Disabled)

	out, err = s.ToggleDisabled(ctx, model.ContentArticle, 8)
	require.NoError(t, err)
	require.False(t, out.Disabled)
}

func TestToggleDisabled_NotFound(t *testing.T) {
	blogs := &targetMock{
		toggleFn: func(ctx context.Context, id int64) (bool, bool, error) {
			return false, false, nil
		},
	}
	s := commentsvc.New(nil, &commentRepoMock{}, &targetMock{}, blogs)

	_, err := s.ToggleDisabled(context.Background(), model.ContentBlogPost, 8)
	require.Equal(t, commentsvc.ErrTargetNotFound, commentsvc.Code(err))
	require.Equal(t, "BlogPost not found", err.Error())
}
