package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

func newMockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db, D: dialect.SQLite}, mock
}

func TestBaseSQLAdapterExec(t *testing.T) {
	t.Run("exec without connection", func(t *testing.T) {
		base := &BaseSQLAdapter{D: dialect.SQLite}
		_, err := base.Exec(context.Background(), qb.Statement{SQL: "DELETE FROM t"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not established")
	})

	t.Run("exec reports affected rows", func(t *testing.T) {
		base, mock := newMockAdapter(t)
		mock.ExpectExec(`DELETE FROM "users" WHERE "id" = ?`).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := base.Exec(context.Background(), qb.Statement{
			SQL:  `DELETE FROM "users" WHERE "id" = ?`,
			Args: []any{"u1"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error is wrapped", func(t *testing.T) {
		base, mock := newMockAdapter(t)
		mock.ExpectExec("BROKEN").WillReturnError(assert.AnError)

		_, err := base.Exec(context.Background(), qb.Statement{SQL: "BROKEN"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute statement")
	})
}

func TestBaseSQLAdapterExecBatch(t *testing.T) {
	t.Run("empty batch is a no-op", func(t *testing.T) {
		base, mock := newMockAdapter(t)
		require.NoError(t, base.ExecBatch(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("statements run in order", func(t *testing.T) {
		base, mock := newMockAdapter(t)
		mock.ExpectExec("UPDATE a").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE b").WillReturnResult(sqlmock.NewResult(0, 1))

		err := base.ExecBatch(context.Background(), []qb.Statement{
			{SQL: "UPDATE a"},
			{SQL: "UPDATE b"},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mid-batch failure reports position", func(t *testing.T) {
		base, mock := newMockAdapter(t)
		mock.ExpectExec("UPDATE a").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE b").WillReturnError(assert.AnError)

		err := base.ExecBatch(context.Background(), []qb.Statement{
			{SQL: "UPDATE a"},
			{SQL: "UPDATE b"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch statement 1")
	})
}

func TestBaseSQLAdapterQuery(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery(`SELECT "id" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))

	rows, err := base.Query(context.Background(), qb.Statement{SQL: `SELECT "id" FROM "users"`})
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	require.True(t, rows.Next())
	var id string
	require.NoError(t, rows.Scan(&id))
	assert.Equal(t, "u1", id)
	assert.NoError(t, rows.Err())
}

func TestRegistry(t *testing.T) {
	t.Run("unknown adapter lists available", func(t *testing.T) {
		_, err := New(coreConn("nope"), nil)
		require.Error(t, err)
		var unknown *UnknownAdapterError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nope", unknown.Type)
	})

	t.Run("empty type", func(t *testing.T) {
		_, err := New(coreConn(""), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not specified")
	})
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(errMsg("duplicate key value violates unique constraint"), "postgres"))
	assert.True(t, IsDuplicateKey(errMsg("Error 1062: Duplicate entry 'u1'"), "mysql"))
	assert.True(t, IsDuplicateKey(errMsg("UNIQUE constraint failed: users.id"), "sqlite"))
	assert.False(t, IsDuplicateKey(errMsg("syntax error"), "postgres"))
	assert.False(t, IsDuplicateKey(nil, "postgres"))
}

func coreConn(typ string) core.ConnConfig {
	return core.ConnConfig{Type: typ}
}

func errMsg(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func TestParseQualifiedName(t *testing.T) {
	schema, name := ParseQualifiedName("public.users", dialect.Postgres)
	assert.Equal(t, "public", schema)
	assert.Equal(t, "users", name)

	schema, name = ParseQualifiedName("users", dialect.Postgres)
	assert.Equal(t, "public", schema)
	assert.Equal(t, "users", name)
}
