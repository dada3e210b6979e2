package dbexec

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardExecutor_NilHandle(t *testing.T) {
	exec := NewStandardExecutor(nil)
	ctx := context.Background()

	_, err := exec.QueryContext(ctx, "SELECT 1")
	assert.ErrorIs(t, err, sql.ErrConnDone)

	_, err = exec.QueryRowContext(ctx, "SELECT 1")
	assert.ErrorIs(t, err, sql.ErrConnDone)

	assert.ErrorIs(t, exec.PingContext(ctx), sql.ErrConnDone)
}

func TestStandardExecutor_QueryRowContext(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT(*) FROM "salas"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	exec := NewStandardExecutor(db)
	row, err := exec.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM "salas"`)
	require.NoError(t, err)

	var total int64
	require.NoError(t, row.Scan(&total))
	assert.Equal(t, int64(7), total)
	require.NoError(t, mock.ExpectationsWereMet())
}
