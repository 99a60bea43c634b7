package engine

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/tuannm99/sqlrite/internal/catalog"
	"github.com/tuannm99/sqlrite/internal/heap"
	"github.com/tuannm99/sqlrite/internal/record"
)

type DatabaseOperation interface {
	CreateTable(schema record.Schema) (*heap.Table, error)
	Table(name string) (*heap.Table, error)
	HasTable(name string) bool
	TableNames() []string
}

var (
	_ DatabaseOperation = (*Database)(nil)
	_ catalog.Lookup    = (*Database)(nil)
)

// Database maps table names to their stores. It only grows: tables are
// added by CREATE TABLE and live until the Database is discarded.
type Database struct {
	mu     sync.RWMutex
	tables map[string]*heap.Table
}

// NewDatabase returns an empty in-memory database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*heap.Table)}
}

// CreateTable registers an empty table for an already validated schema.
func (db *Database) CreateTable(schema record.Schema) (*heap.Table, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[schema.Table]; exists {
		return nil, catalog.NewTableAlreadyExists(schema.Table)
	}
	tbl := heap.NewTable(schema)
	db.tables[schema.Table] = tbl

	slog.Debug("engine: table created", "table", schema.Table, "columns", schema.NumCols())
	return tbl, nil
}

func (db *Database) Table(name string) (*heap.Table, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	tbl, ok := db.tables[name]
	if !ok {
		return nil, catalog.NewUnknownTable(name)
	}
	return tbl, nil
}

func (db *Database) HasTable(name string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, ok := db.tables[name]
	return ok
}

// TableNames returns every table name, sorted.
func (db *Database) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns a read-only copy of a table's schema.
func (db *Database) Schema(name string) (record.Schema, error) {
	tbl, err := db.Table(name)
	if err != nil {
		return record.Schema{}, err
	}
	return tbl.Schema(), nil
}
