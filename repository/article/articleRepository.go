package article

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rbodarve/old-books/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Article, error)
	ByID(ctx context.Context, id int64) (*model.Article, error)
	Create(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id int64) (bool, error)

	// CommentGuard reads comments_disabled under FOR UPDATE inside the
	// comment-create transaction. sql.ErrNoRows when the article is gone.
	CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ToggleCommentsDisabled(ctx context.Context, id int64) (state bool, found bool, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const selectWithCreator = `
	SELECT a.id, a.title, a.content, a.author, a.category, a.created_by,
	       a.comments_disabled, a.created_at, a.updated_at,
	       u.id, u.username, u.role
	FROM articles a
	JOIN users u ON u.id = a.created_by`

func scanWithCreator(row interface{ Scan(...any) error }) (*model.Article, error) {
	var a model.Article
	var creator model.UserRef
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Author, &a.Category, &a.CreatedBy,
		&a.CommentsDisabled, &a.CreatedAt, &a.UpdatedAt,
		&creator.ID, &creator.Username, &creator.Role,
	)
	if err != nil {
		return nil, err
	}
	a.Creator = &creator
	return &a, nil
}

func (r *repo) List(ctx context.Context) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, selectWithCreator+`
		ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [].
	out := []model.Article{}
	for rows.Next() {
		a, err := scanWithCreator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Article, error) {
	a, err := scanWithCreator(r.db.QueryRowContext(ctx, selectWithCreator+` WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repo) Create(ctx context.Context, a *model.Article) error {
	const q = `
		INSERT INTO articles (title, content, author, category, created_by)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, comments_disabled, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		a.Title, a.Content, a.Author, a.Category, a.CreatedBy,
	).Scan(&a.ID, &a.CommentsDisabled, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repo) Update(ctx context.Context, a *model.Article) error {
	const q = `
		UPDATE articles
		SET title=$2, content=$3, category=$4, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`
	return r.db.QueryRowContext(ctx, q, a.ID, a.Title, a.Content, a.Category).Scan(&a.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var disabled bool
	err := tx.QueryRowContext(ctx, `
		SELECT comments_disabled FROM articles WHERE id = $1 FOR UPDATE`, id).Scan(&disabled)
	return disabled, err
}

func (r *repo) ToggleCommentsDisabled(ctx context.Context, id int64) (bool, bool, error) {
	var state bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE articles
		SET comments_disabled = NOT comments_disabled, updated_at = NOW()
		WHERE id = $1
		RETURNING comments_disabled`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return state, true, nil
}
