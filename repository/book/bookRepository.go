package book

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/rbodarve/old-books/model"
)

// Filter carries the catalog query predicates. Nil price bounds mean
// "no bound"; validation happens in the service before this point.
type Filter struct {
	Category  string
	Condition string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
}

type Repo interface {
	List(ctx context.Context, f Filter) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ByISBN(ctx context.Context, isbn string) (*model.Book, error)
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)

	// ReviewGuard reads reviews_disabled under FOR UPDATE so a review
	// insert in the same tx cannot race a toggle. sql.ErrNoRows when the
	// book is gone.
	ReviewGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error)
	ToggleReviewsDisabled(ctx context.Context, id int64) (state bool, found bool, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = "id, title, author, isbn, publication_date, description, category, condition, price, quantity, cover_image, created_by, reviews_disabled, created_at, updated_at"

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationDate, &b.Description,
		&b.Category, &b.Condition, &b.Price, &b.Quantity, &b.CoverImage,
		&b.CreatedBy, &b.ReviewsDisabled, &b.CreatedAt, &b.UpdatedAt,
	)
}

// List is the one genuinely dynamic query in the repo, so it goes through
// a builder instead of hand-concatenated SQL.
func (r *repo) List(ctx context.Context, f Filter) ([]model.Book, error) {
	qb := sq.Select(bookCols).
		From("books").
		OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(sq.Dollar)

	if f.Category != "" {
		qb = qb.Where(sq.Eq{"category": f.Category})
	}
	if f.Condition != "" {
		qb = qb.Where(sq.Eq{"condition": f.Condition})
	}
	if f.MinPrice != nil {
		qb = qb.Where(sq.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		qb = qb.Where(sq.LtOrEq{"price": *f.MaxPrice})
	}
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pat},
			sq.ILike{"author": pat},
			sq.ILike{"isbn": pat},
		})
	}

	q, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil so an empty catalog serializes as [].
	out := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.isbn, b.publication_date, b.description,
		       b.category, b.condition, b.price, b.quantity, b.cover_image,
		       b.created_by, b.reviews_disabled, b.created_at, b.updated_at,
		       u.id, u.username, u.email
		FROM books b
		JOIN users u ON u.id = b.created_by
		WHERE b.id = $1`
	var b model.Book
	var creator model.UserRef
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.PublicationDate, &b.Description,
		&b.Category, &b.Condition, &b.Price, &b.Quantity, &b.CoverImage,
		&b.CreatedBy, &b.ReviewsDisabled, &b.CreatedAt, &b.UpdatedAt,
		&creator.ID, &creator.Username, &creator.Email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Creator = &creator
	return &b, nil
}

func (r *repo) ByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE isbn = $1`, isbn), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, author, isbn, publication_date, description,
		                   category, condition, price, quantity, cover_image, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, reviews_disabled, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.PublicationDate, b.Description,
		b.Category, b.Condition, b.Price, b.Quantity, b.CoverImage, b.CreatedBy,
	).Scan(&b.ID, &b.ReviewsDisabled, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	const q = `
		UPDATE books
		SET title=$2, author=$3, isbn=$4, publication_date=$5, description=$6,
		    category=$7, condition=$8, price=$9, quantity=$10, cover_image=$11,
		    updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`
	return r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.ISBN, b.PublicationDate, b.Description,
		b.Category, b.Condition, b.Price, b.Quantity, b.CoverImage,
	).Scan(&b.UpdatedAt)
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ReviewGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var disabled bool
	err := tx.QueryRowContext(ctx, `
		SELECT reviews_disabled FROM books WHERE id = $1 FOR UPDATE`, id).Scan(&disabled)
	return disabled, err
}

func (r *repo) ToggleReviewsDisabled(ctx context.Context, id int64) (bool, bool, error) {
	var state bool
	err := r.db.QueryRowContext(ctx, `
		UPDATE books
		SET reviews_disabled = NOT reviews_disabled, updated_at = NOW()
		WHERE id = $1
		RETURNING reviews_disabled`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return state, true, nil
}
