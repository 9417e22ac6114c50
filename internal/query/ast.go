// Package query implements the parsed-SQL executor: strategy selection,
// column-name validation, filter evaluation, and projection.
package query

// Expr is a projection or filter-operand expression: either a column
// reference, a literal value, or the special COUNT(*) placeholder.
type Expr struct {
	Kind    ExprKind
	Column  string
	Literal Literal
}

type ExprKind int

const (
	ExprColumn ExprKind = iota
	ExprLiteral
	ExprCountStar
)

// Literal is a SQL literal value lifted from the query text: at most one
// of Int/Float/Str is meaningful, selected by Kind (LiteralNull uses none).
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
}

type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralNull
)

// Op is a comparison operator: = (alias ==), != and its alias <>.
type Op int

const (
	OpEq Op = iota
	OpNotEq
)

// Filter is the single WHERE predicate a SELECT may carry: `<left> <op>
// <right>`, one side a column reference, usually the other a literal.
type Filter struct {
	Left  Expr
	Op    Op
	Right Expr
}

// Select is the parsed form of a SELECT statement.
type Select struct {
	Projection []Expr
	Table      string
	Filter     *Filter // nil means no WHERE clause
}

// DotCommand is one of the three recognized `.`-prefixed commands.
type DotCommand int

const (
	DotNone DotCommand = iota
	DotDBInfo
	DotTables
	DotSchema
)
