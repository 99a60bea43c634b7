package planner

import (
	"fmt"

	"github.com/tuannm99/sqlrite/internal/catalog"
	"github.com/tuannm99/sqlrite/internal/record"
	"github.com/tuannm99/sqlrite/internal/sql/parser"
)

// BuildPlan builds an executable plan from an AST Statement. CREATE TABLE
// is validated here against tables; INSERT checks are left to the table
// store, which owns the schema.
func BuildPlan(stmt parser.Statement, tables catalog.Lookup) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s, tables)
	case *parser.InsertStmt:
		return buildInsertPlan(s)
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildCreateTablePlan(s *parser.CreateTableStmt, tables catalog.Lookup) (Plan, error) {
	schema, err := catalog.Validate(s, tables)
	if err != nil {
		return nil, err
	}
	return &CreateTablePlan{
		TableName: s.TableName,
		Schema:    schema,
	}, nil
}

func buildInsertPlan(s *parser.InsertStmt) (Plan, error) {
	values := make([]record.Value, len(s.Values))
	for i, expr := range s.Values {
		lit, ok := expr.(*parser.LiteralExpr)
		if !ok {
			return nil, fmt.Errorf("planner: only literal expressions supported in INSERT, got %T", expr)
		}
		v, err := literalValue(lit.Value)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return &InsertPlan{
		TableName: s.TableName,
		Columns:   s.Columns,
		Values:    values,
	}, nil
}

func literalValue(v any) (record.Value, error) {
	switch x := v.(type) {
	case nil:
		return record.Null(), nil
	case int64:
		return record.Integer(x), nil
	case int:
		return record.Integer(int64(x)), nil
	case float64:
		return record.Real(x), nil
	case string:
		return record.Text(x), nil
	case bool:
		return record.Bool(x), nil
	default:
		return record.Value{}, fmt.Errorf("planner: unsupported literal %T", v)
	}
}
