package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/sqlrite/internal/engine"
	"github.com/tuannm99/sqlrite/internal/heap"
	"github.com/tuannm99/sqlrite/internal/record"
	"github.com/tuannm99/sqlrite/internal/sql/parser"
	"github.com/tuannm99/sqlrite/internal/sql/planner"
)

// executorDB is a small seam for unit-testing Executor without a real DB.
type executorDB interface {
	CreateTable(schema record.Schema) (*heap.Table, error)
	Table(name string) (*heap.Table, error)
	HasTable(name string) bool
}

var _ executorDB = (*engine.Database)(nil)

// Executor runs one statement at a time against a Database. Every error is
// returned to the caller; a failed statement leaves the database as it was.
type Executor struct {
	DB executorDB
}

func NewExecutor(db *engine.Database) *Executor {
	return &Executor{DB: db}
}

// NewExecutorForTest allows injecting a fake executorDB.
func NewExecutorForTest(db executorDB) *Executor {
	return &Executor{DB: db}
}

// ExecSQL is the top-level entry: SQL string -> Result.
func (e *Executor) ExecSQL(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	return e.Exec(stmt)
}

// Exec runs an already parsed statement.
func (e *Executor) Exec(stmt parser.Statement) (*Result, error) {
	plan, err := planner.BuildPlan(stmt, e.DB)
	if err != nil {
		return nil, err
	}
	return e.execPlan(plan)
}

func (e *Executor) execPlan(p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateTablePlan:
		return e.execCreateTable(plan)
	case *planner.InsertPlan:
		return e.execInsert(plan)
	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func (e *Executor) execCreateTable(p *planner.CreateTablePlan) (*Result, error) {
	tbl, err := e.DB.CreateTable(p.Schema)
	if err != nil {
		return nil, err
	}
	schema := tbl.Schema()

	slog.Debug("executor: create table", "table", p.TableName, "columns", schema.ColumnNames())
	return &Result{
		Effect: EffectTableCreated,
		Table:  p.TableName,
		Schema: &schema,
	}, nil
}

func (e *Executor) execInsert(p *planner.InsertPlan) (*Result, error) {
	tbl, err := e.DB.Table(p.TableName)
	if err != nil {
		return nil, err
	}

	id, err := tbl.Insert(p.Columns, p.Values)
	if err != nil {
		slog.Debug("executor: insert rejected", "table", p.TableName, "err", err)
		return nil, err
	}

	slog.Debug("executor: insert", "table", p.TableName, "rowid", id)
	return &Result{
		Effect:       EffectRowInserted,
		Table:        p.TableName,
		RowID:        id,
		AffectedRows: 1,
	}, nil
}
