package sqlrite

import (
	"errors"

	"github.com/tuannm99/sqlrite/internal/catalog"
	"github.com/tuannm99/sqlrite/internal/engine"
	"github.com/tuannm99/sqlrite/internal/heap"
	"github.com/tuannm99/sqlrite/internal/record"
	"github.com/tuannm99/sqlrite/internal/sql/executor"
	"github.com/tuannm99/sqlrite/internal/sql/lexer"
	"github.com/tuannm99/sqlrite/internal/sql/parser"
)

type (
	Result = executor.Result
	Schema = record.Schema
)

// DB is an in-memory database plus the executor that drives it.
type DB struct {
	db *Database
	ex *executor.Executor
}

// Open returns an empty database. Nothing is persisted.
func Open() *DB {
	db := engine.NewDatabase()
	return &DB{db: db, ex: executor.NewExecutor(db)}
}

// Exec runs a single CREATE TABLE or INSERT statement.
func (d *DB) Exec(sql string) (*Result, error) {
	return d.ex.ExecSQL(sql)
}

func (d *DB) Schema(table string) (Schema, error) {
	return d.db.Schema(table)
}

func (d *DB) Tables() []string {
	return d.db.TableNames()
}

// Database exposes the underlying table map for direct lookups.
func (d *DB) Database() *Database {
	return d.db
}

func IsLexError(err error) bool {
	var e *lexer.Error
	return errors.As(err, &e)
}

func IsParseError(err error) bool {
	var e *parser.Error
	return errors.As(err, &e)
}

func IsSchemaError(err error) bool {
	var e *catalog.SchemaError
	return errors.As(err, &e)
}

func IsInsertError(err error) bool {
	var e *heap.InsertError
	return errors.As(err, &e)
}
