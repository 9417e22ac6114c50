// Package sqlsurface adapts github.com/xwb1989/sqlparser's general SQL AST
// down to this project's own, much narrower query.Select/Expr/Filter shape.
// This is the only package that imports sqlparser directly; everything
// downstream of it only ever sees query.Select.
package sqlsurface

import (
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/lindeneg/litescan/internal/query"
)

// Parse normalizes and parses a single SQL statement, then adapts it into
// a query.Select. Only a narrow SELECT shape is supported; every other
// statement kind is rejected as unimplemented.
func Parse(sql string) (*query.Select, error) {
	stmt, err := sqlparser.Parse(normalize(sql))
	if err != nil {
		return nil, errf("%v", err)
	}

	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, errf("unsupported statement: only SELECT is implemented")
	}
	return FromSelect(sel)
}

// normalize rewrites the `==` equality spelling into the `=` spelling the
// underlying SQL grammar actually parses; both already mean the same
// thing to the executor.
func normalize(sql string) string {
	return strings.ReplaceAll(sql, "==", "=")
}

// FromSelect adapts a parsed *sqlparser.Select into a query.Select.
func FromSelect(stmt *sqlparser.Select) (*query.Select, error) {
	table, err := fromTableExprs(stmt.From)
	if err != nil {
		return nil, err
	}

	projection, err := fromSelectExprs(stmt.SelectExprs)
	if err != nil {
		return nil, err
	}

	filter, err := fromWhere(stmt.Where)
	if err != nil {
		return nil, err
	}

	return &query.Select{Projection: projection, Table: table, Filter: filter}, nil
}

func fromTableExprs(tables sqlparser.TableExprs) (string, error) {
	if len(tables) != 1 {
		return "", errf("expected exactly one table, got %d", len(tables))
	}
	aliased, ok := tables[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", errf("unsupported FROM expression")
	}
	name, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return "", errf("unsupported FROM expression")
	}
	return name.Name.String(), nil
}

func fromSelectExprs(exprs sqlparser.SelectExprs) ([]query.Expr, error) {
	out := make([]query.Expr, 0, len(exprs))
	for _, e := range exprs {
		aliased, ok := e.(*sqlparser.AliasedExpr)
		if !ok {
			return nil, errf("unsupported projection expression: SELECT * is not supported")
		}
		qe, err := fromExpr(aliased.Expr)
		if err != nil {
			return nil, err
		}
		out = append(out, qe)
	}
	return out, nil
}

func fromExpr(e sqlparser.Expr) (query.Expr, error) {
	switch v := e.(type) {
	case *sqlparser.ColName:
		return query.Expr{Kind: query.ExprColumn, Column: v.Name.String()}, nil

	case *sqlparser.FuncExpr:
		if !isCountStar(v) {
			return query.Expr{}, errf("unsupported function: only COUNT(*) is implemented")
		}
		return query.Expr{Kind: query.ExprCountStar}, nil

	case *sqlparser.SQLVal:
		lit, err := fromSQLVal(v)
		if err != nil {
			return query.Expr{}, err
		}
		return query.Expr{Kind: query.ExprLiteral, Literal: lit}, nil

	case *sqlparser.NullVal:
		return query.Expr{Kind: query.ExprLiteral, Literal: query.Literal{Kind: query.LiteralNull}}, nil

	default:
		return query.Expr{}, errf("unsupported expression shape")
	}
}

func isCountStar(f *sqlparser.FuncExpr) bool {
	if !strings.EqualFold(f.Name.String(), "count") {
		return false
	}
	if len(f.Exprs) != 1 {
		return false
	}
	_, ok := f.Exprs[0].(*sqlparser.StarExpr)
	return ok
}

func fromSQLVal(v *sqlparser.SQLVal) (query.Literal, error) {
	switch v.Type {
	case sqlparser.IntVal:
		i, err := strconv.ParseInt(string(v.Val), 10, 64)
		if err != nil {
			return query.Literal{}, errf("invalid integer literal: %s", v.Val)
		}
		return query.Literal{Kind: query.LiteralInt, Int: i}, nil

	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return query.Literal{}, errf("invalid float literal: %s", v.Val)
		}
		return query.Literal{Kind: query.LiteralFloat, Float: f}, nil

	case sqlparser.StrVal:
		return query.Literal{Kind: query.LiteralString, Str: string(v.Val)}, nil

	default:
		return query.Literal{}, errf("unsupported literal shape")
	}
}

func fromWhere(w *sqlparser.Where) (*query.Filter, error) {
	if w == nil {
		return nil, nil
	}

	cmp, ok := w.Expr.(*sqlparser.ComparisonExpr)
	if !ok {
		return nil, errf("unsupported WHERE expression: only a single comparison is implemented")
	}

	op, err := fromOperator(cmp.Operator)
	if err != nil {
		return nil, err
	}

	left, err := fromExpr(cmp.Left)
	if err != nil {
		return nil, err
	}
	right, err := fromExpr(cmp.Right)
	if err != nil {
		return nil, err
	}

	return &query.Filter{Left: left, Op: op, Right: right}, nil
}

func fromOperator(op string) (query.Op, error) {
	switch op {
	case sqlparser.EqualStr:
		return query.OpEq, nil
	case sqlparser.NotEqualStr:
		return query.OpNotEq, nil
	default:
		return 0, errf("unsupported operator: %s", op)
	}
}
