package heap

import (
	"errors"
	"fmt"

	"github.com/tuannm99/sqlrite/internal/record"
)

type InsertErrorKind uint8

const (
	ArityMismatch InsertErrorKind = iota + 1
	NullViolation
	TypeMismatch
	UniqueViolation
	UnknownColumn
	DuplicateColumn
	KeyExhausted
)

var (
	ErrArityMismatch   = errors.New("heap: value count does not match column count")
	ErrNullViolation   = errors.New("heap: NOT NULL constraint violated")
	ErrTypeMismatch    = errors.New("heap: value type does not match column type")
	ErrUniqueViolation = errors.New("heap: UNIQUE constraint violated")
	ErrUnknownColumn   = errors.New("heap: unknown column")
	ErrDuplicateColumn = errors.New("heap: column listed more than once")
	ErrKeyExhausted    = errors.New("heap: no integer key left to assign")
)

var insertSentinel = map[InsertErrorKind]error{
	ArityMismatch:   ErrArityMismatch,
	NullViolation:   ErrNullViolation,
	TypeMismatch:    ErrTypeMismatch,
	UniqueViolation: ErrUniqueViolation,
	UnknownColumn:   ErrUnknownColumn,
	DuplicateColumn: ErrDuplicateColumn,
	KeyExhausted:    ErrKeyExhausted,
}

// InsertError reports why a row was rejected. A rejected row leaves the
// table exactly as it was.
type InsertError struct {
	Kind   InsertErrorKind
	Table  string
	Column string
	// Value is the offending value for UniqueViolation and TypeMismatch.
	Value record.Value
	// Expected and Got are set for ArityMismatch.
	Expected int
	Got      int
}

func (e *InsertError) Error() string {
	switch e.Kind {
	case ArityMismatch:
		return fmt.Sprintf("insert error: table %q expects %d values, got %d", e.Table, e.Expected, e.Got)
	case NullViolation:
		return fmt.Sprintf("insert error: column %s.%s is NOT NULL", e.Table, e.Column)
	case TypeMismatch:
		return fmt.Sprintf("insert error: column %s.%s cannot store %s value %s",
			e.Table, e.Column, e.Value.Kind, e.Value)
	case UniqueViolation:
		return fmt.Sprintf("insert error: UNIQUE constraint failed on %s.%s: value %s already exists",
			e.Table, e.Column, e.Value)
	case UnknownColumn:
		return fmt.Sprintf("insert error: table %q has no column %q", e.Table, e.Column)
	case DuplicateColumn:
		return fmt.Sprintf("insert error: column %q listed more than once", e.Column)
	case KeyExhausted:
		return fmt.Sprintf("insert error: no integer key left for %s.%s", e.Table, e.Column)
	default:
		return "insert error"
	}
}

func (e *InsertError) Is(target error) bool {
	return insertSentinel[e.Kind] == target
}

// ErrCorrupted marks an internal invariant violation, never bad input.
var ErrCorrupted = errors.New("heap: table invariant violated")
