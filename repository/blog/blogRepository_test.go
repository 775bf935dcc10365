package blog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	blogrepo "github.com/rbodarve/old-books/repository/blog"
)

func TestList_NoRowsSerializesAsEmptyArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM blog_posts p").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := blogrepo.New(db).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rows)

	body, err := json.Marshal(rows)
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
	require.NoError(t, mock.ExpectationsWereMet())
}
