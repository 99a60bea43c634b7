package record

import "strings"

type ColumnType uint8

const (
	ColInteger ColumnType = iota + 1
	ColReal
	ColText
	ColBool
)

func (t ColumnType) String() string {
	switch t {
	case ColInteger:
		return "INTEGER"
	case ColReal:
		return "REAL"
	case ColText:
		return "TEXT"
	case ColBool:
		return "BOOL"
	default:
		return "INVALID"
	}
}

// ParseColumnType maps a declared SQL type name onto a storage class.
func ParseColumnType(name string) (ColumnType, bool) {
	switch strings.ToUpper(name) {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT":
		return ColInteger, true
	case "REAL", "FLOAT", "DOUBLE", "DECIMAL", "NUMERIC":
		return ColReal, true
	case "TEXT", "VARCHAR", "CHAR", "STRING", "CLOB":
		return ColText, true
	case "BOOL", "BOOLEAN":
		return ColBool, true
	default:
		return 0, false
	}
}

type Column struct {
	Name         string
	Type         ColumnType
	DeclaredType string
	NotNull      bool
	Unique       bool
	PrimaryKey   bool
}

// Nullable reports whether NULL may be stored in the column.
func (c Column) Nullable() bool { return !c.NotNull }

// Indexed reports whether the column is backed by a uniqueness index.
func (c Column) Indexed() bool { return c.PrimaryKey || c.Unique }

// Schema is the canonical description of one table. Column order defines
// row field order.
type Schema struct {
	Table string
	Cols  []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColumnIndex returns the position of the named column or -1.
func (s Schema) ColumnIndex(name string) int {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i
		}
	}
	return -1
}

// PrimaryKey returns the position of the primary-key column, if any.
func (s Schema) PrimaryKey() (int, bool) {
	for i := range s.Cols {
		if s.Cols[i].PrimaryKey {
			return i, true
		}
	}
	return -1, false
}

// UniqueColumns returns the positions of every indexed column, primary key
// included, in schema order.
func (s Schema) UniqueColumns() []int {
	var out []int
	for i := range s.Cols {
		if s.Cols[i].Indexed() {
			out = append(out, i)
		}
	}
	return out
}

func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Cols))
	for i := range s.Cols {
		names[i] = s.Cols[i].Name
	}
	return names
}

// Clone returns a deep copy so callers never share the column slice.
func (s Schema) Clone() Schema {
	cols := make([]Column, len(s.Cols))
	copy(cols, s.Cols)
	return Schema{Table: s.Table, Cols: cols}
}

// String renders the schema as a CREATE TABLE statement.
func (s Schema) String() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(s.Table)
	b.WriteString(" (")
	for i, c := range s.Cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteByte(' ')
		if c.DeclaredType != "" {
			b.WriteString(c.DeclaredType)
		} else {
			b.WriteString(c.Type.String())
		}
		if c.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
			continue
		}
		if c.NotNull {
			b.WriteString(" NOT NULL")
		}
		if c.Unique {
			b.WriteString(" UNIQUE")
		}
	}
	b.WriteString(")")
	return b.String()
}
