package parser

import "github.com/tuannm99/sqlrite/internal/sql/lexer"

// Statement is the root interface for all SQL statements. The set of
// implementations is closed: *CreateTableStmt and *InsertStmt.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----
type ColumnDef struct {
	Name string
	Type string // as written, upper-cased: "INTEGER", "VARCHAR", ...
	// TypeArgs holds a parenthesised size such as VARCHAR(255) or
	// DECIMAL(10, 2). Recorded, not enforced.
	TypeArgs   []int64
	NotNull    bool
	Unique     bool
	PrimaryKey bool
	Pos        lexer.Span
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- INSERT -----
type InsertStmt struct {
	TableName string
	// Columns is nil when the statement has no column list, meaning every
	// column in schema order.
	Columns []string
	Values  []Expr // only constant expr for now
}

func (*InsertStmt) stmtNode() {}

// ----- Expressions -----
type Expr interface {
	exprNode()
}

// LiteralExpr holds int64, float64, string, bool or nil (NULL).
type LiteralExpr struct {
	Value any
	Pos   lexer.Span
}

func (*LiteralExpr) exprNode() {}
