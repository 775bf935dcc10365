package book_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rbodarve/old-books/model"
	bookrepo "github.com/rbodarve/old-books/repository/book"
	booksvc "github.com/rbodarve/old-books/service/book"
)

type repoMock struct {
	listFn   func(ctx context.Context, f bookrepo.Filter) ([]model.Book, error)
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
	byISBNFn func(ctx context.Context, isbn string) (*model.Book, error)
	createFn func(ctx context.Context, b *model.Book) error
	updateFn func(ctx context.Context, b *model.Book) error
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

var _ bookrepo.Repo = (*repoMock)(nil)

func (m *repoMock) List(ctx context.Context, f bookrepo.Filter) ([]model.Book, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	if m.byISBNFn == nil {
		return nil, nil
	}
	return m.byISBNFn(ctx, isbn)
}
func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) error { return m.updateFn(ctx, b) }
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}
func (m *repoMock) ReviewGuard(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	return false, nil
}
func (m *repoMock) ToggleReviewsDisabled(ctx context.Context, id int64) (bool, bool, error) {
	return false, false, nil
}

func fptr(v float64) *float64 { return &v }

func validCreate() booksvc.CreateInput {
	return booksvc.CreateInput{
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		ISBN:            "978-0134190440",
		PublicationDate: time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC),
		Description:     "The reference.",
		Category:        "Non-Fiction",
		Condition:       "Good",
		Price:           35.5,
		Quantity:        3,
	}
}

func TestList_PriceRangeValidation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()

	_, err := s.List(ctx, booksvc.Filter{MinPrice: fptr(-1)})
	require.Error(t, err)
	require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))
	require.Equal(t, "Minimum price cannot be negative", err.Error())

	_, err = s.List(ctx, booksvc.Filter{MaxPrice: fptr(-0.5)})
	require.Error(t, err)
	require.Equal(t, "Maximum price cannot be negative", err.Error())

	_, err = s.List(ctx, booksvc.Filter{MinPrice: fptr(20), MaxPrice: fptr(10)})
	require.Error(t, err)
	require.Equal(t, "Maximum price must be greater than or equal to minimum price", err.Error())
}

func TestList_PassesFilterThrough(t *testing.T) {
	var got bookrepo.Filter
	m := &repoMock{
		listFn: func(ctx context.Context, f bookrepo.Filter) ([]model.Book, error) {
			got = f
			return []model.Book{{ID: 1}}, nil
		},
	}
	s := booksvc.New(m)

	rows, err := s.List(context.Background(), booksvc.Filter{
		Category: "Fantasy",
		Search:   "tolkien",
		MinPrice: fptr(5),
		MaxPrice: fptr(50),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Fantasy", got.Category)
	require.Equal(t, "tolkien", got.Search)
}

func TestGetByID_NotFound(t *testing.T) {
	s := booksvc.New(&repoMock{})
	_, err := s.GetByID(context.Background(), 99)
	require.Error(t, err)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	in := validCreate()
	in.Title = "  "
	_, err := s.Create(ctx, in, admin)
	require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))

	in = validCreate()
	in.Price = -5
	_, err = s.Create(ctx, in, admin)
	require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))
	require.Equal(t, "Price must be a non-negative number", err.Error())

	in = validCreate()
	in.Quantity = -1
	_, err = s.Create(ctx, in, admin)
	require.Equal(t, "Quantity must be a non-negative integer", err.Error())

	in = validCreate()
	in.Quantity = 2.5
	_, err = s.Create(ctx, in, admin)
	require.Equal(t, "Quantity must be a non-negative integer", err.Error())
}

func TestCreate_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		byISBNFn: func(ctx context.Context, isbn string) (*model.Book, error) {
			return &model.Book{ID: 5, ISBN: isbn}, nil
		},
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), validCreate(), &model.User{ID: 1, Role: model.RoleAdmin})
	require.Error(t, err)
	require.Equal(t, booksvc.ErrDuplicateISBN, booksvc.Code(err))
}

func TestCreate_Success_TrimsAndStampsActor(t *testing.T) {
	var stored *model.Book
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 7
			stored = b
			return nil
		},
	}
	s := booksvc.New(m)

	in := validCreate()
	in.Title = "  Dune  "
	in.ISBN = " 978-0441172719 "
	b, err := s.Create(context.Background(), in, &model.User{ID: 3, Role: model.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, int64(7), b.ID)
	require.Equal(t, "Dune", stored.Title)
	require.Equal(t, "978-0441172719", stored.ISBN)
	require.Equal(t, int64(3), stored.CreatedBy)
	require.Equal(t, int64(3), stored.Quantity)
}

func TestUpdate_PartialSemantics(t *testing.T) {
	existing := &model.Book{
		ID:       4,
		Title:    "Old Title",
		Author:   "Old Author",
		ISBN:     "111",
		Price:    10,
		Quantity: 2,
		Category: "Fiction",
	}
	var saved *model.Book
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			cp := *existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error {
			saved = b
			return nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Update(context.Background(), 4, booksvc.UpdateInput{
		Title: "New Title",
		Price: fptr(0), // zero is a real value, not "absent"
	})
	require.NoError(t, err)
	require.Equal(t, "New Title", saved.Title)
	require.Equal(t, "Old Author", saved.Author)
	require.Equal(t, float64(0), saved.Price)
	require.Equal(t, int64(2), saved.Quantity)
	require.Equal(t, b, saved)
}

func TestUpdate_NegativePriceRejectedWithoutPersist(t *testing.T) {
	updateCalled := false
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: 4, Price: 10}, nil
		},
		updateFn: func(ctx context.Context, b *model.Book) error {
			updateCalled = true
			return nil
		},
	}
	s := booksvc.New(m)

	_, err := s.Update(context.Background(), 4, booksvc.UpdateInput{Price: fptr(-5)})
	require.Error(t, err)
	require.Equal(t, booksvc.ErrBadInput, booksvc.Code(err))
	require.False(t, updateCalled)
}

func TestUpdate_NotFound(t *testing.T) {
	s := booksvc.New(&repoMock{})
	_, err := s.Update(context.Background(), 123, booksvc.UpdateInput{Title: "x"})
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}

func TestDelete(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return id == 1, nil },
	}
	s := booksvc.New(m)

	require.NoError(t, s.Delete(context.Background(), 1))

	err := s.Delete(context.Background(), 2)
	require.Error(t, err)
	require.Equal(t, booksvc.ErrNotFound, booksvc.Code(err))
}
