package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableColumnsIntPK(t *testing.T) {
	cols, err := ParseTableColumns(
		`CREATE TABLE apples (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, color TEXT)`,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "color"}, cols.Names())
	assert.True(t, cols.Has("name"))
	assert.False(t, cols.Has("weight"))

	assert.True(t, cols.IsIntPK("id"))
	assert.False(t, cols.IsIntPK("name"))

	pos, ok := cols.RecordPos("color")
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	name, ok := cols.IntPKName()
	require.True(t, ok)
	assert.Equal(t, "id", name)
}

func TestParseTableColumnsWithoutIntPK(t *testing.T) {
	cols, err := ParseTableColumns(`CREATE TABLE widgets (sku TEXT, price FLOAT)`)
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "price"}, cols.Names())
	_, ok := cols.IntPKName()
	assert.False(t, ok)
}

func TestParseTableColumnsSkipsTableConstraints(t *testing.T) {
	cols, err := ParseTableColumns(
		`CREATE TABLE t (a INTEGER, b INTEGER, PRIMARY KEY (a, b))`,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cols.Names())
}

func TestParseIndexColumn(t *testing.T) {
	idx, err := ParseIndexColumn(`CREATE INDEX idx_color ON apples (color)`)
	require.NoError(t, err)
	assert.Equal(t, "color", idx.Col)
}
