package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabular/internal/testutil"
	"github.com/leapstack-labs/tabular/pkg/adapter"
	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

type user struct {
	ID       string `db:"id"`
	UserName string
	Email    *string
	Age      *int64
}

func (user) TableName() string { return "users" }

type mockAdapter struct {
	adapter.BaseSQLAdapter
}

func (m *mockAdapter) Connect(_ context.Context, _ core.ConnConfig) error { return nil }
func (m *mockAdapter) Tables(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}
func (m *mockAdapter) Describe(_ context.Context, _ string) (*core.Table, error) {
	return nil, nil
}

func newMockAdapter(t *testing.T) (*mockAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &mockAdapter{BaseSQLAdapter: adapter.BaseSQLAdapter{
		DB:     db,
		D:      dialect.SQLite,
		Logger: testutil.NewTestLogger(t),
	}}, mock
}

func usersSchema() *core.Schema {
	return &core.Schema{
		Tables: []core.Table{{
			Name: "users",
			Columns: []core.Column{
				{Name: "id", Type: "TEXT"},
				{Name: "user_name", Type: "TEXT"},
				{Name: "email", Type: "TEXT", Nullable: true},
				{Name: "age", Type: "INTEGER", Nullable: true},
			},
			Keys: []core.UniqueKey{{Name: "PRIMARY", Columns: []string{"id"}}},
		}},
	}
}

func newUserDAO(t *testing.T) (*DAO[user, string], sqlmock.Sqlmock) {
	t.Helper()
	ad, mock := newMockAdapter(t)
	d, err := New[user, string](usersSchema(), ad, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return d, mock
}

func TestNew(t *testing.T) {
	d, _ := newUserDAO(t)
	assert.Equal(t, "users", d.Table().Name)
	assert.Equal(t, "id", d.PrimaryKey().Name)
}

type unnamedEntity struct{ ID string }

func (unnamedEntity) TableName() string { return "" }

type missingEntity struct{ ID string }

func (missingEntity) TableName() string { return "nowhere" }

type badTagEntity struct {
	ID    string `db:"id"`
	Extra string `db:"no_such_column"`
}

func (badTagEntity) TableName() string { return "users" }

func TestNewErrors(t *testing.T) {
	ad, _ := newMockAdapter(t)
	schema := usersSchema()

	t.Run("empty table name", func(t *testing.T) {
		_, err := New[unnamedEntity, string](schema, ad, nil)
		assert.ErrorIs(t, err, core.ErrNoTableName)
	})

	t.Run("table not in schema", func(t *testing.T) {
		_, err := New[missingEntity, string](schema, ad, nil)
		assert.ErrorIs(t, err, core.ErrTableNotFound)
	})

	t.Run("tagged column missing from table", func(t *testing.T) {
		_, err := New[badTagEntity, string](schema, ad, nil)
		assert.ErrorIs(t, err, core.ErrMissingColumn)
	})

	t.Run("table without unique keys", func(t *testing.T) {
		bare := &core.Schema{Tables: []core.Table{{
			Name:    "users",
			Columns: []core.Column{{Name: "id"}},
		}}}
		_, err := New[user, string](bare, ad, nil)
		assert.ErrorIs(t, err, core.ErrNoPrimaryKey)
	})
}

func TestInsert(t *testing.T) {
	email := "pat@example.com"
	age := int64(30)

	t.Run("full entity writes every column", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name", "email", "age") VALUES (?, ?, ?, ?)`).
			WithArgs("u1", "pat", email, age).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.Insert(context.Background(), user{ID: "u1", UserName: "pat", Email: &email, Age: &age})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null columns are left out", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name") VALUES (?, ?)`).
			WithArgs("u2", "sam").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.Insert(context.Background(), user{ID: "u2", UserName: "sam"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertAll(t *testing.T) {
	email := "pat@example.com"
	age := int64(30)

	t.Run("empty collection is a no-op", func(t *testing.T) {
		d, mock := newUserDAO(t)
		require.NoError(t, d.InsertAll(context.Background(), nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single entity runs as a plain insert", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name") VALUES (?, ?)`).
			WithArgs("u1", "pat").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.InsertAll(context.Background(), []user{{ID: "u1", UserName: "pat"}})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("uniform rows collapse into one multi-row insert", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name") VALUES (?, ?), (?, ?)`).
			WithArgs("u1", "pat", "u2", "sam").
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := d.InsertAll(context.Background(), []user{
			{ID: "u1", UserName: "pat"},
			{ID: "u2", UserName: "sam"},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mixed shapes run as a statement batch", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name", "email", "age") VALUES (?, ?, ?, ?)`).
			WithArgs("u1", "pat", email, age).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "users" ("id", "user_name") VALUES (?, ?)`).
			WithArgs("u2", "sam").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.InsertAll(context.Background(), []user{
			{ID: "u1", UserName: "pat", Email: &email, Age: &age},
			{ID: "u2", UserName: "sam"},
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	email := "pat@example.com"

	t.Run("skips null columns and never sets the primary key", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`UPDATE "users" SET "user_name" = ? WHERE "id" = ?`).
			WithArgs("pat", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.Update(context.Background(), user{ID: "u1", UserName: "pat"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keep-null overwrites with NULL", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`UPDATE "users" SET "user_name" = ?, "email" = ?, "age" = ? WHERE "id" = ?`).
			WithArgs("pat", nil, nil, "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := d.UpdateIgnoring(context.Background(), user{ID: "u1", UserName: "pat"}, false)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing primary key value fails without executing", func(t *testing.T) {
		d, mock := newUserDAO(t)
		err := d.Update(context.Background(), user{UserName: "pat", Email: &email})
		assert.ErrorIs(t, err, core.ErrNoPrimaryKeyValue)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateAll(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectExec(`UPDATE "users" SET "user_name" = ? WHERE "id" = ?`).
		WithArgs("pat", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "user_name" = ? WHERE "id" = ?`).
		WithArgs("sam", "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := d.UpdateAll(context.Background(), []user{
		{ID: "u1", UserName: "pat"},
		{ID: "u2", UserName: "sam"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	selectUsers := `SELECT "id", "user_name", "email", "age" FROM "users" WHERE "id" = ?`

	t.Run("found", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectQuery(selectUsers).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}).
				AddRow("u1", "pat", "pat@example.com", int64(30)))

		got, err := d.Get(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "pat", got.UserName)
		require.NotNil(t, got.Email)
		assert.Equal(t, "pat@example.com", *got.Email)
	})

	t.Run("not found", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectQuery(selectUsers).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}))

		_, err := d.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("optional lookup reports presence", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectQuery(selectUsers).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}))

		_, ok, err := d.GetOpt(context.Background(), "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGetAll(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectQuery(`SELECT "id", "user_name", "email", "age" FROM "users" WHERE "id" IN (?, ?)`).
		WithArgs("u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}).
			AddRow("u1", "pat", nil, nil).
			AddRow("u2", "sam", nil, nil))

	got, err := d.GetAll(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sam", got[1].UserName)
	assert.Nil(t, got[1].Email)
}

func TestDelete(t *testing.T) {
	t.Run("requires a present condition", func(t *testing.T) {
		d, mock := newUserDAO(t)
		_, err := d.Delete(context.Background())
		assert.ErrorIs(t, err, core.ErrNoCondition)

		_, err = d.Delete(context.Background(), qb.When(false, qb.Eq("id", "u1")))
		assert.ErrorIs(t, err, core.ErrNoCondition)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("whole table needs an explicit predicate", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`DELETE FROM "users" WHERE 1 = 1`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := d.Delete(context.Background(), qb.True())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("by id", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`DELETE FROM "users" WHERE "id" = ?`).
			WithArgs("u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := d.DeleteByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("by ids", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectExec(`DELETE FROM "users" WHERE "id" IN (?, ?)`).
			WithArgs("u1", "u2").
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := d.DeleteByIDs(context.Background(), []string{"u1", "u2"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestCount(t *testing.T) {
	t.Run("no conditions counts the whole table", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectQuery(`SELECT COUNT(*) FROM (SELECT "id" FROM "users" WHERE 1 = 1) AS cnt`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

		n, err := d.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	})

	t.Run("conditions narrow the count", func(t *testing.T) {
		d, mock := newUserDAO(t)
		mock.ExpectQuery(`SELECT COUNT(*) FROM (SELECT "id" FROM "users" WHERE "user_name" = ?) AS cnt`).
			WithArgs("pat").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

		n, err := d.Count(context.Background(), qb.Eq("user_name", "pat"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestExecEscapeHatch(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectExec(`VACUUM`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := d.Exec(func(ad adapter.Adapter) error {
		_, err := ad.Exec(context.Background(), qb.Statement{SQL: "VACUUM"})
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchSorted(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectQuery(`SELECT "id", "user_name", "email", "age" FROM "users" WHERE "age" > ? ORDER BY "user_name" DESC`).
		WithArgs(int64(18)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}).
			AddRow("u2", "sam", nil, int64(33)).
			AddRow("u1", "pat", nil, int64(30)))

	got, err := d.FetchSorted(context.Background(),
		[]qb.Condition{qb.Gt("age", int64(18))}, qb.Desc("user_name"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sam", got[0].UserName)
}

func TestFetchPage(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectQuery(`SELECT COUNT(*) FROM (SELECT "id", "user_name", "email", "age" FROM "users" WHERE 1 = 1) AS cnt`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))
	mock.ExpectQuery(`SELECT "id", "user_name", "email", "age" FROM "users" WHERE 1 = 1 ORDER BY "user_name" LIMIT ? OFFSET ?`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "email", "age"}).
			AddRow("u21", "uma", nil, nil).
			AddRow("u22", "val", nil, nil))

	page, err := d.FetchPage(context.Background(), core.NewPage[user](20, 10),
		nil, qb.Asc("user_name"))
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "uma", page.Data[0].UserName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchPageLoose(t *testing.T) {
	d, mock := newUserDAO(t)
	mock.ExpectQuery(`SELECT COUNT(*) FROM (SELECT "user_name", "age", "ignored" FROM "users") AS cnt`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`SELECT "user_name", "age", "ignored" FROM "users" LIMIT ? OFFSET ?`).
		WithArgs(5, 0).
		WillReturnRows(sqlmock.NewRows([]string{"user_name", "age", "ignored"}).
			AddRow("pat", int64(30), "x").
			AddRow("sam", nil, "y"))

	page, err := d.FetchPageLoose(context.Background(), core.NewPage[user](0, 5), func() *qb.SelectBuilder {
		return qb.Select("user_name", "age", "ignored").From("users")
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "pat", page.Data[0].UserName)
	require.NotNil(t, page.Data[0].Age)
	assert.Equal(t, int64(30), *page.Data[0].Age)
	// NULL leaves the pointer nil, unknown columns are skipped.
	assert.Nil(t, page.Data[1].Age)
	assert.Equal(t, "", page.Data[1].ID)
}
