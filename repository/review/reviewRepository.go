package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rbodarve/old-books/model"
)

type Repo interface {
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	// RatingsByBook feeds the stats aggregation.
	RatingsByBook(ctx context.Context, bookID int64) ([]int, error)

	Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Review, error)
	Delete(ctx context.Context, tx *sql.Tx, id int64) error

	SetWarning(ctx context.Context, id int64, warning string, addedBy int64) (*model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const reviewCols = "id, book_id, user_id, author, rating, content, warning, warning_added_by, created_at, updated_at"

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	return row.Scan(
		&rv.ID, &rv.BookID, &rv.UserID, &rv.Author, &rv.Rating, &rv.Content,
		&rv.Warning, &rv.WarningAddedBy, &rv.CreatedAt, &rv.UpdatedAt,
	)
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.book_id, rv.user_id, rv.author, rv.rating, rv.content,
		       rv.warning, rv.warning_added_by, rv.created_at, rv.updated_at,
		       u.id, u.username, u.email
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.book_id = $1
		ORDER BY rv.created_at DESC, rv.id DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so a book without reviews serializes as [].
	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		var poster model.UserRef
		if err := rows.Scan(
			&rv.ID, &rv.BookID, &rv.UserID, &rv.Author, &rv.Rating, &rv.Content,
			&rv.Warning, &rv.WarningAddedBy, &rv.CreatedAt, &rv.UpdatedAt,
			&poster.ID, &poster.Username, &poster.Email,
		); err != nil {
			return nil, err
		}
		rv.Poster = &poster
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) RatingsByBook(ctx context.Context, bookID int64) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rating FROM reviews WHERE book_id = $1 ORDER BY created_at DESC, id DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	const q = `
		INSERT INTO reviews (book_id, user_id, author, rating, content)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		rv.BookID, rv.UserID, rv.Author, rv.Rating, rv.Content,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Review, error) {
	var rv model.Review
	err := scanReview(tx.QueryRowContext(ctx, `
		SELECT `+reviewCols+` FROM reviews WHERE id = $1 FOR UPDATE`, id), &rv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

func (r *repo) SetWarning(ctx context.Context, id int64, warning string, addedBy int64) (*model.Review, error) {
	var rv model.Review
	err := scanReview(r.db.QueryRowContext(ctx, `
		UPDATE reviews
		SET warning = $2, warning_added_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+reviewCols, id, warning, addedBy), &rv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
