package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureSchema hand-builds a DBSchema as Reflect would have produced it
// for a database with one table, one user-defined index, one sqlite
// auto-index, and the internal sqlite_sequence bookkeeping table — without
// needing to decode real page bytes.
func fixtureSchema(t *testing.T) *DBSchema {
	t.Helper()

	apples, err := ParseTableColumns(
		`CREATE TABLE apples (id INTEGER PRIMARY KEY, name TEXT, color TEXT)`,
	)
	require.NoError(t, err)

	colorIdx, err := ParseIndexColumn(`CREATE INDEX idx_color ON apples (color)`)
	require.NoError(t, err)

	return &DBSchema{Objects: []*ObjSchema{
		{
			Type: ObjTable, Name: "apples", TblName: "apples", RootPage: 2,
			SQL: "CREATE TABLE apples (id INTEGER PRIMARY KEY, name TEXT, color TEXT)", HasSQL: true,
			cols: apples,
		},
		{
			Type: ObjIndex, Name: "idx_color", TblName: "apples", RootPage: 3,
			SQL: "CREATE INDEX idx_color ON apples (color)", HasSQL: true,
			cols: colorIdx,
		},
		{
			Type: ObjIndex, Name: "sqlite_autoindex_apples_1", TblName: "apples", RootPage: 4,
			HasSQL: false,
		},
		{
			Type: ObjTable, Name: "sqlite_sequence", TblName: "sqlite_sequence", RootPage: 5,
			SQL: "CREATE TABLE sqlite_sequence(name,seq)", HasSQL: true,
		},
	}}
}

func TestTableLooksUpByNameCaseInsensitively(t *testing.T) {
	sch := fixtureSchema(t)
	obj, ok := sch.Table("APPLES")
	require.True(t, ok)
	assert.Equal(t, int64(2), obj.RootPage)

	_, ok = sch.Table("oranges")
	assert.False(t, ok)
}

func TestIndexFindsUserDefinedIndexOnly(t *testing.T) {
	sch := fixtureSchema(t)
	idx, ok := sch.Index("apples", "color")
	require.True(t, ok)
	assert.Equal(t, "idx_color", idx.Name)

	// The sqlite-internal auto-index on the same table is never addressable.
	_, ok = sch.Index("apples", "id")
	assert.False(t, ok)
}

func TestUserTablesExcludesSqliteSequence(t *testing.T) {
	sch := fixtureSchema(t)
	names := make([]string, 0, len(sch.UserTables()))
	for _, o := range sch.UserTables() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"apples"}, names)

	// Tables() still includes it — the exclusion is .tables-only.
	all := make([]string, 0, len(sch.Tables()))
	for _, o := range sch.Tables() {
		all = append(all, o.Name)
	}
	assert.ElementsMatch(t, []string{"apples", "sqlite_sequence"}, all)
}

func TestIndexesReturnsBothAutoAndUserIndexes(t *testing.T) {
	sch := fixtureSchema(t)
	assert.Len(t, sch.Indexes(), 2)
}

func TestColsPanicsWithoutStoredSQL(t *testing.T) {
	obj := &ObjSchema{Type: ObjIndex, Name: "sqlite_autoindex_apples_1"}
	assert.Panics(t, func() { obj.Cols() })
}
