package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() Table {
	return Table{
		Name: "users",
		Columns: []Column{
			{Name: "id", Type: "TEXT", Position: 1},
			{Name: "user_name", Type: "TEXT", Nullable: true, Position: 2},
		},
		Keys: []UniqueKey{{Name: "PRIMARY", Columns: []string{"id"}}},
	}
}

func TestSchemaTable(t *testing.T) {
	t.Run("resolves by name case-insensitively", func(t *testing.T) {
		s := &Schema{Tables: []Table{testTable()}}
		tab, err := s.Table("Users")
		require.NoError(t, err)
		assert.Equal(t, "users", tab.Name)
	})

	t.Run("not found", func(t *testing.T) {
		s := &Schema{Tables: []Table{testTable()}}
		_, err := s.Table("orders")
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("ambiguous name is a hard error", func(t *testing.T) {
		s := &Schema{Tables: []Table{testTable(), testTable()}}
		_, err := s.Table("users")
		assert.ErrorIs(t, err, ErrAmbiguousTable)
	})
}

func TestTablePrimaryKey(t *testing.T) {
	t.Run("first column of first key", func(t *testing.T) {
		tab := testTable()
		tab.Keys = []UniqueKey{
			{Name: "PRIMARY", Columns: []string{"id", "user_name"}},
			{Name: "uq_name", Columns: []string{"user_name"}},
		}
		pk, err := tab.PrimaryKey()
		require.NoError(t, err)
		assert.Equal(t, "id", pk.Name)
	})

	t.Run("no keys", func(t *testing.T) {
		tab := testTable()
		tab.Keys = nil
		_, err := tab.PrimaryKey()
		assert.ErrorIs(t, err, ErrNoPrimaryKey)
	})

	t.Run("key names unknown column", func(t *testing.T) {
		tab := testTable()
		tab.Keys = []UniqueKey{{Columns: []string{"missing"}}}
		_, err := tab.PrimaryKey()
		assert.ErrorIs(t, err, ErrMissingColumn)
	})
}

func TestTableQualifiedName(t *testing.T) {
	tab := testTable()
	assert.Equal(t, "users", tab.QualifiedName())
	tab.Schema = "app"
	assert.Equal(t, "app.users", tab.QualifiedName())
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](20, 10)
	assert.Equal(t, 20, p.Start)
	assert.Equal(t, 10, p.PageSize)
	assert.Zero(t, p.Total)
	assert.Empty(t, p.Data)
}
