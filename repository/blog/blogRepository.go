package blog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rbodarve/old-books/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.BlogPost, error)
	ByID(ctx context.Context, id int64) (*model.BlogPost, error)
	Create(ctx context.Context, p *model.BlogPost) error

	CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ToggleCommentsDisabled(ctx context.Context, id int64) (state bool, found bool, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const selectWithCreator = `
	SELECT p.id, p.title, p.content, p.author, p.created_by,
	       p.comments_disabled, p.created_at, p.updated_at,
	       u.id, u.username, u.role
	FROM blog_posts p
	JOIN users u ON u.id = p.created_by`

func scanWithCreator(row interface{ Scan(...any) error }) (*model.BlogPost, error) {
	var p model.BlogPost
	var creator model.UserRef
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Author, &p.CreatedBy,
		&p.CommentsDisabled, &p.CreatedAt, &p.UpdatedAt,
		&creator.ID, &creator.Username, &creator.Role,
	)
	if err != nil {
		return nil, err
	}
	p.Creator = &creator
	return &p, nil
}

func (r *repo) List(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := r.db.QueryContext(ctx, selectWithCreator+`
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [].
	out := []model.BlogPost{}
	for rows.Next() {
		p, err := scanWithCreator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.BlogPost, error) {
	p, err := scanWithCreator(r.db.QueryRowContext(ctx, selectWithCreator+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) Create(ctx context.Context, p *model.BlogPost) error {
	const q = `
		INSERT INTO blog_posts (title, content, author, created_by)
		VALUES ($1,$2,$3,$4)
		RETURNING id, comments_disabled, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		p.Title, p.Content, p.Author, p.CreatedBy,
	).Scan(&p.ID, &p.CommentsDisabled, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repo) CommentGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var disabled bool
	err := tx.QueryRowContext(ctx, `
		SELECT comments_disabled FROM blog_posts WHERE id = $1 FOR UPDATE`, id).Scan(&disabled)
	return disabled, err
}

func (r *repo) ToggleCommentsDisabled(ctx context.Context, id int64) (bool, bool, error) {
	var state bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE blog_posts
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
