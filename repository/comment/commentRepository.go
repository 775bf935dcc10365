package comment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rbodarve/old-books/model"
)

type Repo interface {
	ListByTarget(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error)
	// ListByContentID matches on content_id alone; kept for clients that
	// predate the polymorphic comment shape.
	ListByContentID(ctx context.Context, contentID int64) ([]model.Comment, error)
	ListAll(ctx context.Context) ([]model.Comment, error)

	Insert(ctx context.Context, tx *sql.Tx, c *model.Comment) error
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) error

	SetWarning(ctx context.Context, id int64, warning string, addedBy int64) (*model.Comment, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const commentCols = "id, content_type, content_id, user_id, author, content, warning, warning_added_by, created_at, updated_at"

func scanComment(row interface{ Scan(...any) error }, c *model.Comment) error {
	return row.Scan(
		&c.ID, &c.ContentType, &c.ContentID, &c.UserID, &c.Author, &c.Content,
		&c.Warning, &c.WarningAddedBy, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *repo) collect(rows *sql.Rows) ([]model.Comment, error) {
	defer rows.Close()
	// Non-nil so an empty match serializes as [].
	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) ListByTarget(ctx context.Context, ct model.ContentType, contentID int64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+commentCols+`
		FROM comments
		WHERE content_type = $1 AND content_id = $2
		ORDER BY created_at DESC, id DESC`, ct, contentID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) ListByContentID(ctx context.Context, contentID int64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+commentCols+`
		FROM comments
		WHERE content_id = $1
		ORDER BY created_at DESC, id DESC`, contentID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.content_type, c.content_id, c.user_id, c.author, c.content,
		       c.warning, c.warning_added_by, c.created_at, c.updated_at,
		       u.id, u.username, u.email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var poster model.UserRef
		if err := rows.Scan(
			&c.ID, &c.ContentType, &c.ContentID, &c.UserID, &c.Author, &c.Content,
			&c.Warning, &c.WarningAddedBy, &c.CreatedAt, &c.UpdatedAt,
			&poster.ID, &poster.Username, &poster.Email,
		); err != nil {
			return nil, err
		}
		c.Poster = &poster
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
	const q = `
		INSERT INTO comments (content_type, content_id, user_id, author, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		c.ContentType, c.ContentID, c.UserID, c.Author, c.Content,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Comment, error) {
	var c model.Comment
	err := scanComment(tx.QueryRowContext(ctx, `
		SELECT `+commentCols+` FROM comments WHERE id = $1 FOR UPDATE`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *repo) SetWarning(ctx context.Context, id int64, warning string, addedBy int64) (*model.Comment, error) {
	var c model.Comment
	err := scanComment(r.db.QueryRowContext(ctx, `
		UPDATE comments
		SET warning = $2, warning_added_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+commentCols, id, warning, addedBy), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
