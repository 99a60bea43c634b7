package executor

import (
	"fmt"

	"github.com/tuannm99/sqlrite/internal/heap"
	"github.com/tuannm99/sqlrite/internal/record"
)

type Effect uint8

const (
	EffectTableCreated Effect = iota + 1
	EffectRowInserted
)

func (e Effect) String() string {
	switch e {
	case EffectTableCreated:
		return "table created"
	case EffectRowInserted:
		return "row inserted"
	default:
		return "unknown effect"
	}
}

// Result is what a successful statement did.
type Result struct {
	Effect Effect
	Table  string

	// Set for EffectTableCreated.
	Schema *record.Schema

	// Set for EffectRowInserted.
	RowID heap.RowID

	// For DML:
	AffectedRows int64
}

func (r *Result) String() string {
	switch r.Effect {
	case EffectTableCreated:
		return "table created"
	case EffectRowInserted:
		return fmt.Sprintf("row inserted: id %d", r.RowID)
	default:
		return r.Effect.String()
	}
}
