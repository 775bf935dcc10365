package comment_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rbodarve/old-books/model"
	commentrepo "github.com/rbodarve/old-books/repository/comment"
)

func TestListByTarget_NoRowsSerializesAsEmptyArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM comments").
		WithArgs(model.ContentArticle, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, err := commentrepo.New(db).ListByTarget(context.Background(), model.ContentArticle, 3)
	require.NoError(t, err)
	require.NotNil(t, rows)

	body, err := json.Marshal(rows)
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
	require.NoError(t, mock.ExpectationsWereMet())
}
