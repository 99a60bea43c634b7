package planner

import (
	"github.com/tuannm99/sqlrite/internal/record"
)

// Plan is the interface for executable plans. Implementations:
// *CreateTablePlan and *InsertPlan.
type Plan interface {
	planNode()
}

// ----- Plan nodes -----

// CreateTablePlan carries a schema that already passed validation.
type CreateTablePlan struct {
	TableName string
	Schema    record.Schema
}

func (*CreateTablePlan) planNode() {}

type InsertPlan struct {
	TableName string
	Columns   []string // nil: every column in schema order
	Values    []record.Value
}

func (*InsertPlan) planNode() {}
