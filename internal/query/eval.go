package query

import (
	"github.com/lindeneg/litescan/internal/btree"
	"github.com/lindeneg/litescan/internal/format"
	"github.com/lindeneg/litescan/internal/schema"
	"github.com/lindeneg/litescan/internal/value"
)

// row is the evaluation context for a single matched cell: its row id, its
// decoded record, and the table's column view. When rec is nil, every
// column reference evaluates to the empty string: this is the empty-result
// stand-in used to project column names without a matching row.
type row struct {
	cols  *schema.TblCols
	rowID int64
	rec   *format.Record
}

// evalExpr evaluates a projection/filter operand to a runtime Value.
func evalExpr(e Expr, r row) (value.Value, error) {
	switch e.Kind {
	case ExprLiteral:
		return literalToValue(e.Literal), nil

	case ExprCountStar:
		return value.NewCountPlaceholder(), nil

	case ExprColumn:
		if r.rec == nil {
			return value.NewText(""), nil
		}
		if r.cols.IsIntPK(e.Column) {
			return value.NewInt(r.rowID), nil
		}
		pos, ok := r.cols.RecordPos(e.Column)
		if !ok {
			return value.Value{}, errf("no such column: %s", e.Column)
		}
		col := r.rec.Col(pos)
		if col == nil || col.IsNull() {
			return value.NewNull(), nil
		}
		return btree.ColContentToValue(col)
	}
	return value.Value{}, errf("unrecognized expression kind")
}

func literalToValue(l Literal) value.Value {
	switch l.Kind {
	case LiteralInt:
		return value.NewInt(l.Int)
	case LiteralFloat:
		return value.NewFloat(l.Float)
	case LiteralString:
		return value.NewText(l.Str)
	default:
		return value.NewNull()
	}
}

// evalFilter evaluates a Filter to a Go bool: a row is kept iff the
// filter yields Int(1). Internally this goes through the same Int(0)/
// Int(1) Value convention used throughout, and panics if that invariant
// is ever violated — a non-Int result from a filter is a bug, never a
// data problem.
func evalFilter(f *Filter, r row) (bool, error) {
	l, err := evalExpr(f.Left, r)
	if err != nil {
		return false, err
	}
	right, err := evalExpr(f.Right, r)
	if err != nil {
		return false, err
	}

	cmp, err := value.Compare(l, right)
	if err != nil {
		return false, errf("%v", err)
	}

	var result value.Value
	switch f.Op {
	case OpEq:
		result = value.Bool(cmp == 0)
	case OpNotEq:
		result = value.Bool(cmp != 0)
	default:
		panic("evalFilter: unrecognized operator")
	}

	if result.Kind != value.Int {
		panic("evalFilter: filter evaluated to a non-Int value")
	}
	return result.I == 1, nil
}
