package catalog

import (
	"errors"
	"fmt"
)

type ErrorKind uint8

const (
	DuplicateColumn ErrorKind = iota + 1
	MultiplePrimaryKeys
	UnknownType
	TableAlreadyExists
	UnknownTable
)

var (
	ErrDuplicateColumn     = errors.New("catalog: duplicate column")
	ErrMultiplePrimaryKeys = errors.New("catalog: multiple primary keys")
	ErrUnknownType         = errors.New("catalog: unknown column type")
	ErrTableAlreadyExists  = errors.New("catalog: table already exists")
	ErrUnknownTable        = errors.New("catalog: unknown table")
)

var kindSentinel = map[ErrorKind]error{
	DuplicateColumn:     ErrDuplicateColumn,
	MultiplePrimaryKeys: ErrMultiplePrimaryKeys,
	UnknownType:         ErrUnknownType,
	TableAlreadyExists:  ErrTableAlreadyExists,
	UnknownTable:        ErrUnknownTable,
}

// SchemaError reports a CREATE TABLE that cannot be accepted, or a
// statement naming a table that does not exist.
type SchemaError struct {
	Kind   ErrorKind
	Table  string
	Column string
	// Type is set for UnknownType.
	Type string
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case DuplicateColumn:
		return fmt.Sprintf("schema error: duplicate column %q in table %q", e.Column, e.Table)
	case MultiplePrimaryKeys:
		return fmt.Sprintf("schema error: table %q declares more than one PRIMARY KEY", e.Table)
	case UnknownType:
		return fmt.Sprintf("schema error: column %q has unknown type %q", e.Column, e.Type)
	case TableAlreadyExists:
		return fmt.Sprintf("schema error: table %q already exists", e.Table)
	case UnknownTable:
		return fmt.Sprintf("schema error: no such table %q", e.Table)
	default:
		return "schema error"
	}
}

// Is lets errors.Is match a SchemaError against the per-kind sentinels.
func (e *SchemaError) Is(target error) bool {
	return kindSentinel[e.Kind] == target
}

func NewUnknownTable(table string) *SchemaError {
	return &SchemaError{Kind: UnknownTable, Table: table}
}

func NewTableAlreadyExists(table string) *SchemaError {
	return &SchemaError{Kind: TableAlreadyExists, Table: table}
}
