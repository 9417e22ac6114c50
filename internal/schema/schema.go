// Package schema reflects the sqlite_master meta-table at page 1 into a
// queryable in-memory catalog of tables, indexes, views, and triggers.
package schema

import (
	"strings"

	"github.com/lindeneg/litescan/internal/btree"
	"github.com/lindeneg/litescan/internal/format"
	"github.com/lindeneg/litescan/internal/seq"
)

const (
	ObjTable   = "table"
	ObjIndex   = "index"
	ObjView    = "view"
	ObjTrigger = "trigger"
)

// autoIndexPrefix marks indexes SQLite creates implicitly to enforce a
// PRIMARY KEY or UNIQUE constraint; these carry no usable sql text and are
// not directly addressable by name.
const autoIndexPrefix = "sqlite_autoindex_"

// sqliteSequenceTable is excluded from .tables output only; it remains a
// normal, queryable table otherwise.
const sqliteSequenceTable = "sqlite_sequence"

// ObjSchema is one row of the sqlite_master table, decoded and — where its
// sql column is present — resolved into a Cols view.
type ObjSchema struct {
	Type     string
	Name     string
	TblName  string
	RootPage int64
	SQL      string
	HasSQL   bool

	cols Cols
}

// Cols returns this object's derived column view. It panics if the object
// has no stored sql — resolving a column name against it is a programmer
// error that should be caught upstream.
func (o *ObjSchema) Cols() Cols {
	if o.cols == nil {
		panic("schema: object " + o.Name + " has no sql; columns are unknown")
	}
	return o.cols
}

// DBSchema is the full reflected catalog of schema objects.
type DBSchema struct {
	Objects []*ObjSchema

	// Size is the number of free bytes remaining on the schema root page's
	// content area, surfaced by `.dbinfo` as "schema size".
	Size int
}

// Reflect parses the file header, parses page 1's header, full-table-scans
// page 1, and derives each object's Cols view from its stored sql.
func Reflect(db []byte) (*DBSchema, error) {
	header, err := format.ParseDatabaseHeader(db)
	if err != nil {
		return nil, err
	}
	pageSize := header.EffectivePageSize()

	// Parsing page 1's header here (in addition to the implicit parse
	// inside FullTableScan) surfaces a malformed schema-root page as an
	// error before any cell is touched, ahead of the table scan below.
	root, err := format.ParsePage(1, pageSize, db)
	if err != nil {
		return nil, err
	}

	scan := btree.FullTableScan(db, pageSize, 1)
	cells, err := seq.Collect[*format.LeafTableCell](scan)
	if err != nil {
		return nil, err
	}

	objects := make([]*ObjSchema, 0, len(cells))
	for _, cell := range cells {
		obj, err := decodeObjSchema(cell.Record)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return &DBSchema{Objects: objects, Size: root.FreeBytes()}, nil
}

func decodeObjSchema(rec *format.Record) (*ObjSchema, error) {
	if len(rec.Columns) < 5 {
		return nil, errf("sqlite_master row has %d columns, want 5", len(rec.Columns))
	}

	typ, err := colText(rec, 0)
	if err != nil {
		return nil, err
	}
	name, err := colText(rec, 1)
	if err != nil {
		return nil, err
	}
	tblName, err := colText(rec, 2)
	if err != nil {
		return nil, err
	}

	rootPage, ok := rec.Col(3).AsInt64()
	if !ok {
		return nil, errf("sqlite_master row %q has non-integral rootpage", name)
	}

	obj := &ObjSchema{Type: typ, Name: name, TblName: tblName, RootPage: rootPage}

	if sqlCol := rec.Col(4); !sqlCol.IsNull() {
		sqlText, err := colText(rec, 4)
		if err != nil {
			return nil, err
		}
		obj.SQL = sqlText
		obj.HasSQL = true

		switch typ {
		case ObjTable:
			cols, err := ParseTableColumns(sqlText)
			if err != nil {
				return nil, err
			}
			obj.cols = cols
		case ObjIndex:
			cols, err := ParseIndexColumn(sqlText)
			if err != nil {
				return nil, err
			}
			obj.cols = cols
		}
	}

	return obj, nil
}

func colText(rec *format.Record, i int) (string, error) {
	col := rec.Col(i)
	if col == nil {
		return "", errf("missing column %d", i)
	}
	if col.Kind != format.ColText {
		return "", errf("column %d is not text (kind %d)", i, col.Kind)
	}
	return string(col.Bytes), nil
}

// Table finds a table object by name.
func (s *DBSchema) Table(name string) (*ObjSchema, bool) {
	for _, o := range s.Objects {
		if o.Type == ObjTable && strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return nil, false
}

// Index finds a user-defined index on (table, column), excluding
// sqlite-internal auto-indexes.
func (s *DBSchema) Index(table, column string) (*ObjSchema, bool) {
	for _, o := range s.Objects {
		if o.Type != ObjIndex || !strings.EqualFold(o.TblName, table) {
			continue
		}
		if strings.HasPrefix(o.Name, autoIndexPrefix) {
			continue
		}
		if !o.HasSQL {
			continue
		}
		if ic, ok := o.cols.(*IdxCols); ok && strings.EqualFold(ic.Col, column) {
			return o, true
		}
	}
	return nil, false
}

func (s *DBSchema) filterByType(t string) []*ObjSchema {
	var out []*ObjSchema
	for _, o := range s.Objects {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}

// Tables returns every table object, including sqlite_sequence; the
// exclusion only applies to .tables' user-facing listing.
func (s *DBSchema) Tables() []*ObjSchema { return s.filterByType(ObjTable) }

// Indexes returns every index object.
func (s *DBSchema) Indexes() []*ObjSchema { return s.filterByType(ObjIndex) }

// Views returns every view object.
func (s *DBSchema) Views() []*ObjSchema { return s.filterByType(ObjView) }

// Triggers returns every trigger object.
func (s *DBSchema) Triggers() []*ObjSchema { return s.filterByType(ObjTrigger) }

// UserTables returns Tables() minus the internal sqlite_sequence table, the
// listing `.tables` uses.
func (s *DBSchema) UserTables() []*ObjSchema {
	var out []*ObjSchema
	for _, o := range s.Tables() {
		if strings.EqualFold(o.Name, sqliteSequenceTable) {
			continue
		}
		out = append(out, o)
	}
	return out
}
