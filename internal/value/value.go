// Package value implements the runtime-evaluated Value model shared by the
// B-tree index comparator and the query executor.
package value

import (
	"fmt"
	"strings"
)

// Kind tags which alternative of Value is populated.
type Kind int

const (
	Null Kind = iota
	Int
	Float
	Blob
	Text
	CountPlaceholder
)

// Value is the runtime form a column, literal, or row-id takes once
// evaluated out of a record or SQL literal. Exactly one of the typed
// fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	I    int64
	F    float64
	B    []byte
	S    string
}

func NewNull() Value             { return Value{Kind: Null} }
func NewInt(i int64) Value       { return Value{Kind: Int, I: i} }
func NewFloat(f float64) Value   { return Value{Kind: Float, F: f} }
func NewBlob(b []byte) Value     { return Value{Kind: Blob, B: b} }
func NewText(s string) Value     { return Value{Kind: Text, S: s} }
func NewCountPlaceholder() Value { return Value{Kind: CountPlaceholder} }

// Bool lifts a Go bool to the Int(0)/Int(1) convention filter evaluation
// uses throughout the executor.
func Bool(b bool) Value {
	if b {
		return NewInt(1)
	}
	return NewInt(0)
}

// Equal reports strict Value equality. Values of differing Kind are never
// equal, Null included. Filter evaluation does not use it; it compares
// through Compare instead.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case Null, CountPlaceholder:
		return true
	case Int:
		return v.I == o.I
	case Float:
		return v.F == o.F
	case Blob:
		return string(v.B) == string(o.B)
	case Text:
		return v.S == o.S
	}
	return false
}

// Compare orders two Values for index-key comparison: Null sorts below
// every non-Null value; Int
// and Float compare numerically, with an Int promoted to float64 when
// compared against a Float; Text compares lexicographically by byte order
// (BINARY collation). Comparisons across any other pair of kinds are
// reported as unsupported.
func Compare(a, b Value) (int, error) {
	if a.Kind == Null && b.Kind == Null {
		return 0, nil
	}
	if a.Kind == Null {
		return -1, nil
	}
	if b.Kind == Null {
		return 1, nil
	}
	if a.Kind == Int && b.Kind == Int {
		return cmpInt64(a.I, b.I), nil
	}
	if a.Kind == Float && b.Kind == Float {
		return cmpFloat64(a.F, b.F), nil
	}
	if a.Kind == Int && b.Kind == Float {
		return cmpFloat64(float64(a.I), b.F), nil
	}
	if a.Kind == Float && b.Kind == Int {
		return cmpFloat64(a.F, float64(b.I)), nil
	}
	if a.Kind == Text && b.Kind == Text {
		return strings.Compare(a.S, b.S), nil
	}
	return 0, fmt.Errorf("unsupported key type: cannot compare %s to %s", a.Kind, b.Kind)
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b Value) bool {
	c, err := Compare(a, b)
	return err == nil && c < 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Blob:
		return "Blob"
	case Text:
		return "Text"
	case CountPlaceholder:
		return "CountPlaceholder"
	default:
		return "Unknown"
	}
}

// Format renders a Value for display: NULL literal, blobs as
// space-separated uppercase hex byte pairs, numbers in decimal, text
// verbatim.
func (v Value) Format() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Float:
		return formatFloat(v.F)
	case Blob:
		return formatBlob(v.B)
	case Text:
		return v.S
	case CountPlaceholder:
		return ""
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

func formatBlob(b []byte) string {
	var sb strings.Builder
	for i, by := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", by)
	}
	return sb.String()
}
