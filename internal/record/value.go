package record

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindText:
		return "TEXT"
	case KindBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged literal. The zero Value is NULL.
type Value struct {
	Kind ValueKind
	Int  int64
	Real float64
	Text string
	Bool bool
}

// Row is an ordered sequence of values aligned to a Schema.
type Row []Value

func Null() Value               { return Value{} }
func Integer(v int64) Value     { return Value{Kind: KindInteger, Int: v} }
func Real(v float64) Value      { return Value{Kind: KindReal, Real: v} }
func Text(v string) Value       { return Value{Kind: KindText, Text: v} }
func Bool(v bool) Value         { return Value{Kind: KindBool, Bool: v} }
func (v Value) IsNull() bool    { return v.Kind == KindNull }
func (v Value) IsNumeric() bool { return v.Kind == KindInteger || v.Kind == KindReal }

// Any unwraps the value into a plain Go value (nil for NULL).
func (v Value) Any() any {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindReal:
		return v.Real
	case KindText:
		return v.Text
	case KindBool:
		return v.Bool
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindText:
		return "'" + strings.ReplaceAll(v.Text, "'", "''") + "'"
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "NULL"
	}
}

func kindRank(k ValueKind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInteger, KindReal:
		return 2
	default:
		return 3
	}
}

// Compare orders values: NULL < BOOL < numeric < TEXT. Integers and reals
// compare numerically, text compares byte-wise, false sorts before true.
func Compare(a, b Value) int {
	if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch a.Kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	case KindText:
		return strings.Compare(a.Text, b.Text)
	}
	switch {
	case a.Kind == KindInteger && b.Kind == KindInteger:
		return cmp.Compare(a.Int, b.Int)
	case a.Kind == KindInteger:
		return compareIntReal(a.Int, b.Real)
	case b.Kind == KindInteger:
		return -compareIntReal(b.Int, a.Real)
	default:
		return cmp.Compare(a.Real, b.Real)
	}
}

// compareIntReal orders an integer against a real without rounding the
// integer through float64, so i and f are equal only when f is exactly i.
// NaN sorts below every number, as cmp.Compare does.
func compareIntReal(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f < math.MinInt64:
		return 1
	case f >= math.MaxInt64:
		return -1
	}
	whole := math.Trunc(f)
	if n := int64(whole); i != n {
		return cmp.Compare(i, n)
	}
	return cmp.Compare(whole, f)
}

// IntegralReal reports the integer a real holds exactly, if any.
func IntegralReal(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// Clone copies a row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// RowID locates a row inside its table's append-only row arena.
type RowID uint64
