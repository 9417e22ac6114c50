package query

import (
	"github.com/lindeneg/litescan/internal/btree"
	"github.com/lindeneg/litescan/internal/format"
	"github.com/lindeneg/litescan/internal/schema"
	"github.com/lindeneg/litescan/internal/seq"
	"github.com/lindeneg/litescan/internal/value"
)

// Row is one output row: the projected Values in declaration order.
type Row []value.Value

// Executor binds a file buffer and its reflected schema, ready to run
// dot-commands and SELECT statements against it.
type Executor struct {
	DB       []byte
	PageSize int
	Schema   *schema.DBSchema
}

// NewExecutor builds an Executor, parsing just enough of the file header
// to know its page size.
func NewExecutor(db []byte, sch *schema.DBSchema) (*Executor, error) {
	header, err := format.ParseDatabaseHeader(db)
	if err != nil {
		return nil, err
	}
	return &Executor{DB: db, PageSize: header.EffectivePageSize(), Schema: sch}, nil
}

// RunSelect executes a parsed SELECT through a five-stage pipeline:
// resolve table, validate columns, choose a strategy, stream, filter and
// project.
func (ex *Executor) RunSelect(sel *Select) ([]Row, error) {
	// Resolved
	obj, ok := ex.Schema.Table(sel.Table)
	if !ok {
		return nil, errf("no such table: %s", sel.Table)
	}
	tblCols, ok := obj.Cols().(*schema.TblCols)
	if !ok {
		return nil, errf("schema object %s is not a table", sel.Table)
	}

	// Validated
	if err := ex.validateColumns(sel, tblCols); err != nil {
		return nil, err
	}

	// Planned
	scan, err := ex.plan(sel, obj, tblCols)
	if err != nil {
		return nil, err
	}

	// Streaming
	return ex.stream(scan, sel, tblCols)
}

// validateColumns checks every column name mentioned in the projection and
// filter against the table's column view, suggesting the most similar
// known name on a miss.
func (ex *Executor) validateColumns(sel *Select, cols *schema.TblCols) error {
	check := func(name string) error {
		if cols.Has(name) {
			return nil
		}
		if suggestion, ok := mostSimilar(name, cols.Names()); ok {
			return errf("no such column: %s (did you mean %s?)", name, suggestion)
		}
		return errf("no such column: %s", name)
	}

	for _, e := range sel.Projection {
		if e.Kind == ExprColumn {
			if err := check(e.Column); err != nil {
				return err
			}
		}
	}
	if sel.Filter != nil {
		for _, e := range []Expr{sel.Filter.Left, sel.Filter.Right} {
			if e.Kind == ExprColumn {
				if err := check(e.Column); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// eqFilterShape extracts the `<column> = <literal>` shape a Filter must
// take to qualify for the int-PK or index strategies, regardless of which
// side the column was written on.
func eqFilterShape(f *Filter) (col string, lit Literal, ok bool) {
	if f == nil || f.Op != OpEq {
		return "", Literal{}, false
	}
	if f.Left.Kind == ExprColumn && f.Right.Kind == ExprLiteral {
		return f.Left.Column, f.Right.Literal, true
	}
	if f.Right.Kind == ExprColumn && f.Left.Kind == ExprLiteral {
		return f.Right.Column, f.Left.Literal, true
	}
	return "", Literal{}, false
}

// plan chooses among the three traversal strategies in priority order.
func (ex *Executor) plan(sel *Select, obj *schema.ObjSchema, cols *schema.TblCols) (seq.Seq[*format.LeafTableCell], error) {
	if col, lit, ok := eqFilterShape(sel.Filter); ok {
		if cols.IsIntPK(col) && lit.Kind == LiteralInt {
			cell, found, err := btree.PKScan(ex.DB, ex.PageSize, int(obj.RootPage), lit.Int)
			if err != nil {
				return nil, err
			}
			if !found {
				return seq.Empty[*format.LeafTableCell](), nil
			}
			return seq.Of(cell), nil
		}

		if idx, found := ex.Schema.Index(obj.Name, col); found {
			key := literalToValue(lit)
			return btree.IndexScan(ex.DB, ex.PageSize, int(idx.RootPage), int(obj.RootPage), key), nil
		}
	}

	return btree.FullTableScan(ex.DB, ex.PageSize, int(obj.RootPage)), nil
}

// stream drains the planned scan, applying the filter and projecting
// surviving rows, handling the COUNT(*) placeholder-then-substitute
// protocol.
func (ex *Executor) stream(scan seq.Seq[*format.LeafTableCell], sel *Select, cols *schema.TblCols) ([]Row, error) {
	isCount := false
	for _, e := range sel.Projection {
		if e.Kind == ExprCountStar {
			isCount = true
			break
		}
	}

	var firstRow Row
	count := 0
	var rows []Row

	for {
		cell, ok, err := scan.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		r := row{cols: cols, rowID: cell.RowID, rec: cell.Record}
		if sel.Filter != nil {
			keep, err := evalFilter(sel.Filter, r)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}

		projected, err := projectRow(sel.Projection, r)
		if err != nil {
			return nil, err
		}

		if isCount {
			count++
			if firstRow == nil {
				firstRow = projected
			}
			continue
		}
		rows = append(rows, projected)
	}

	if !isCount {
		return rows, nil
	}

	if firstRow == nil {
		// Empty result set: project against the empty stand-in.
		standIn, err := projectRow(sel.Projection, row{cols: cols})
		if err != nil {
			return nil, err
		}
		firstRow = standIn
	}
	substituteCount(firstRow, int64(count))
	return []Row{firstRow}, nil
}

func projectRow(exprs []Expr, r row) (Row, error) {
	out := make(Row, len(exprs))
	for i, e := range exprs {
		v, err := evalExpr(e, r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func substituteCount(r Row, count int64) {
	for i, v := range r {
		if v.Kind == value.CountPlaceholder {
			r[i] = value.NewInt(count)
		}
	}
}
