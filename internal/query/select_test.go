// External test package: select_test.go exercises the executor through
// sqlsurface, and sqlsurface imports query, so these tests must live
// outside package query to avoid an import cycle.
package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lindeneg/litescan/internal/query"
	"github.com/lindeneg/litescan/internal/schema"
	"github.com/lindeneg/litescan/internal/sqlsurface"
)

// testDB is a two-page, 512-byte-page-size database: page 1 holds the
// sqlite_master row for a single table, apples(id INTEGER PRIMARY KEY,
// name TEXT, color TEXT); page 2 is that table's single leaf page holding
// four rows. No index is present, so every test here drives the int-PK or
// full-scan strategies (the index-scan scenario is covered by
// internal/btree's own tests against a synthetic index B-tree instead of
// duplicating this fixture).
var testDB = []byte{
	0x53, 0x51, 0x4c, 0x69, 0x74, 0x65, 0x20, 0x66, 0x6f, 0x72, 0x6d, 0x61,
	0x74, 0x20, 0x33, 0x00, 0x02, 0x00, 0x01, 0x01, 0x00, 0x40, 0x20, 0x20,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x04,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x0d, 0x00, 0x00, 0x00, 0x01, 0x01, 0xa2, 0x00,
	0x01, 0xa2, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5c, 0x01,
	0x07, 0x17, 0x19, 0x19, 0x01, 0x81, 0x13, 0x74, 0x61, 0x62, 0x6c, 0x65,
	0x61, 0x70, 0x70, 0x6c, 0x65, 0x73, 0x61, 0x70, 0x70, 0x6c, 0x65, 0x73,
	0x02, 0x43, 0x52, 0x45, 0x41, 0x54, 0x45, 0x20, 0x54, 0x41, 0x42, 0x4c,
	0x45, 0x20, 0x61, 0x70, 0x70, 0x6c, 0x65, 0x73, 0x20, 0x28, 0x69, 0x64,
	0x20, 0x49, 0x4e, 0x54, 0x45, 0x47, 0x45, 0x52, 0x20, 0x50, 0x52, 0x49,
	0x4d, 0x41, 0x52, 0x59, 0x20, 0x4b, 0x45, 0x59, 0x2c, 0x20, 0x6e, 0x61,
	0x6d, 0x65, 0x20, 0x54, 0x45, 0x58, 0x54, 0x2c, 0x20, 0x63, 0x6f, 0x6c,
	0x6f, 0x72, 0x20, 0x54, 0x45, 0x58, 0x54, 0x29, 0x0d, 0x00, 0x00, 0x00,
	0x04, 0x01, 0xa9, 0x00, 0x01, 0xe9, 0x01, 0xd4, 0x01, 0xb7, 0x01, 0xa9,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x0c, 0x04, 0x04, 0x01, 0x15, 0x13, 0x04, 0x46, 0x75, 0x6a, 0x69,
	0x52, 0x65, 0x64, 0x1b, 0x03, 0x04, 0x01, 0x2d, 0x19, 0x03, 0x47, 0x6f,
	0x6c, 0x64, 0x65, 0x6e, 0x20, 0x44, 0x65, 0x6c, 0x69, 0x63, 0x69, 0x6f,
	0x75, 0x73, 0x59, 0x65, 0x6c, 0x6c, 0x6f, 0x77, 0x13, 0x02, 0x04, 0x01,
	0x21, 0x15, 0x02, 0x48, 0x6f, 0x6e, 0x65, 0x79, 0x63, 0x72, 0x69, 0x73,
	0x70, 0x50, 0x69, 0x6e, 0x6b, 0x15, 0x01, 0x04, 0x09, 0x25, 0x17, 0x47,
	0x72, 0x61, 0x6e, 0x6e, 0x79, 0x20, 0x53, 0x6d, 0x69, 0x74, 0x68, 0x47,
	0x72, 0x65, 0x65, 0x6e,
}

func newTestExecutor(t *testing.T) *query.Executor {
	t.Helper()
	sch, err := schema.Reflect(testDB)
	require.NoError(t, err)
	ex, err := query.NewExecutor(testDB, sch)
	require.NoError(t, err)
	return ex
}

func runSQL(t *testing.T, ex *query.Executor, sql string) []query.Row {
	t.Helper()
	sel, err := sqlsurface.Parse(sql)
	require.NoError(t, err)
	rows, err := ex.RunSelect(sel)
	require.NoError(t, err)
	return rows
}

func TestUserTablesListsApples(t *testing.T) {
	sch, err := schema.Reflect(testDB)
	require.NoError(t, err)
	names := make([]string, 0, len(sch.UserTables()))
	for _, o := range sch.UserTables() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"apples"}, names)
}

func TestSelectCountStar(t *testing.T) {
	ex := newTestExecutor(t)
	rows := runSQL(t, ex, "SELECT count(*) FROM apples")
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 1)
	assert.Equal(t, "4", rows[0][0].Format())
}

func TestSelectByIntPK(t *testing.T) {
	ex := newTestExecutor(t)
	rows := runSQL(t, ex, "SELECT id, name FROM apples WHERE id = 2")
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0][0].Format())
	assert.Equal(t, "Honeycrisp", rows[0][1].Format())
}

func TestSelectFullScanWithFilter(t *testing.T) {
	ex := newTestExecutor(t)
	rows := runSQL(t, ex, "SELECT name FROM apples WHERE color != 'Red'")
	require.Len(t, rows, 3)
	var names []string
	for _, r := range rows {
		names = append(names, r[0].Format())
	}
	assert.ElementsMatch(t, []string{"Granny Smith", "Honeycrisp", "Golden Delicious"}, names)
}

func TestSelectDoubleEqualsIsAcceptedAsEquality(t *testing.T) {
	ex := newTestExecutor(t)
	rows := runSQL(t, ex, "SELECT name FROM apples WHERE id == 3")
	require.Len(t, rows, 1)
	assert.Equal(t, "Golden Delicious", rows[0][0].Format())
}

func TestSelectUnknownColumnSuggestsClosestName(t *testing.T) {
	ex := newTestExecutor(t)
	sel, err := sqlsurface.Parse("SELECT colr FROM apples")
	require.NoError(t, err)
	_, err = ex.RunSelect(sel)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
}
