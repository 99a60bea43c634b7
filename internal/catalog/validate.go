package catalog

import (
	"github.com/tuannm99/sqlrite/internal/record"
	"github.com/tuannm99/sqlrite/internal/sql/parser"
)

// Lookup is the read-only view of the database the validator needs.
type Lookup interface {
	HasTable(name string) bool
}

// Validate checks a parsed CREATE TABLE and returns its canonical schema.
// It never registers anything; the caller does that on success.
//
// Checks run in a fixed order and the first failure is returned:
// duplicate column, multiple primary keys, unknown type, existing table.
// PRIMARY KEY columns come back with NotNull and Unique set.
func Validate(stmt *parser.CreateTableStmt, tables Lookup) (record.Schema, error) {
	seen := make(map[string]struct{}, len(stmt.Columns))
	for _, c := range stmt.Columns {
		if _, dup := seen[c.Name]; dup {
			return record.Schema{}, &SchemaError{Kind: DuplicateColumn, Table: stmt.TableName, Column: c.Name}
		}
		seen[c.Name] = struct{}{}
	}

	pks := 0
	for _, c := range stmt.Columns {
		if c.PrimaryKey {
			pks++
		}
	}
	if pks > 1 {
		return record.Schema{}, &SchemaError{Kind: MultiplePrimaryKeys, Table: stmt.TableName}
	}

	cols := make([]record.Column, 0, len(stmt.Columns))
	for _, c := range stmt.Columns {
		typ, ok := record.ParseColumnType(c.Type)
		if !ok {
			return record.Schema{}, &SchemaError{
				Kind:   UnknownType,
				Table:  stmt.TableName,
				Column: c.Name,
				Type:   c.Type,
			}
		}
		col := record.Column{
			Name:         c.Name,
			Type:         typ,
			DeclaredType: c.Type,
			NotNull:      c.NotNull,
			Unique:       c.Unique,
			PrimaryKey:   c.PrimaryKey,
		}
		if col.PrimaryKey {
			col.NotNull = true
			col.Unique = true
		}
		cols = append(cols, col)
	}

	if tables != nil && tables.HasTable(stmt.TableName) {
		return record.Schema{}, NewTableAlreadyExists(stmt.TableName)
	}

	return record.Schema{Table: stmt.TableName, Cols: cols}, nil
}
