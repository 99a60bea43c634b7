package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/sqlrite/internal/catalog"
	"github.com/tuannm99/sqlrite/internal/engine"
	"github.com/tuannm99/sqlrite/internal/heap"
	"github.com/tuannm99/sqlrite/internal/record"
	"github.com/tuannm99/sqlrite/internal/sql/lexer"
	"github.com/tuannm99/sqlrite/internal/sql/parser"
)

const createUsers = `CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT UNIQUE
);`

func newUsersExecutor(t *testing.T) (*Executor, *engine.Database) {
	t.Helper()
	db := engine.NewDatabase()
	ex := NewExecutor(db)

	res, err := ex.ExecSQL(createUsers)
	require.NoError(t, err)
	require.Equal(t, EffectTableCreated, res.Effect)
	return ex, db
}

func mustExec(t *testing.T, ex *Executor, sql string) *Result {
	t.Helper()
	res, err := ex.ExecSQL(sql)
	require.NoError(t, err, sql)
	return res
}

func TestExecutor_CreateTable(t *testing.T) {
	_, db := newUsersExecutor(t)

	schema, err := db.Schema("users")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "email"}, schema.ColumnNames())

	pk, ok := schema.PrimaryKey()
	require.True(t, ok)
	assert.Equal(t, 0, pk)
	assert.True(t, schema.Cols[0].NotNull)
	assert.True(t, schema.Cols[0].Unique)
	assert.True(t, schema.Cols[1].NotNull)
	assert.True(t, schema.Cols[2].Unique)
	assert.True(t, schema.Cols[2].Nullable())

	tbl, err := db.Table("users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, tbl.IndexedColumns())
}

func TestExecutor_CreateTableResult(t *testing.T) {
	ex := NewExecutor(engine.NewDatabase())
	res := mustExec(t, ex, "CREATE TABLE t (a INT)")

	require.NotNil(t, res.Schema)
	assert.Equal(t, "t", res.Table)
	assert.Equal(t, "t", res.Schema.Table)
	assert.Equal(t, "table created", res.String())
}

func TestExecutor_InsertAndLookup(t *testing.T) {
	ex, db := newUsersExecutor(t)

	res := mustExec(t, ex, "INSERT INTO users VALUES (1, 'ann', 'ann@x.io');")
	assert.Equal(t, EffectRowInserted, res.Effect)
	assert.Equal(t, int64(1), res.AffectedRows)
	assert.Equal(t, heap.RowID(0), res.RowID)
	assert.Equal(t, "row inserted: id 0", res.String())

	mustExec(t, ex, "INSERT INTO users VALUES (2, 'bob', NULL);")
	mustExec(t, ex, "INSERT INTO users (name, id) VALUES ('cy', 3);")

	tbl, err := db.Table("users")
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	want := map[int64]string{1: "ann", 2: "bob", 3: "cy"}
	for id, name := range want {
		row, _, ok := tbl.Lookup("id", record.Integer(id))
		require.True(t, ok, "id %d", id)
		assert.Equal(t, record.Text(name), row[1])
	}

	entries, ok := tbl.IndexEntries("id")
	require.True(t, ok)
	keys := make([]int64, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key.Int)
	}
	assert.Equal(t, []int64{1, 2, 3}, keys)
	require.NoError(t, tbl.CheckInvariants())
}

func TestExecutor_UniqueViolationOnPrimaryKey(t *testing.T) {
	ex, db := newUsersExecutor(t)
	mustExec(t, ex, "INSERT INTO users VALUES (1, 'ann', NULL)")

	_, err := ex.ExecSQL("INSERT INTO users VALUES (1, 'dup', NULL)")
	require.ErrorIs(t, err, heap.ErrUniqueViolation)

	var ie *heap.InsertError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, heap.UniqueViolation, ie.Kind)
	assert.Equal(t, "id", ie.Column)
	assert.Equal(t, record.Integer(1), ie.Value)

	tbl, _ := db.Table("users")
	assert.Equal(t, 1, tbl.Len())
	row, _, _ := tbl.Lookup("id", record.Integer(1))
	assert.Equal(t, record.Text("ann"), row[1])
}

func TestExecutor_NullViolation(t *testing.T) {
	ex, db := newUsersExecutor(t)

	_, err := ex.ExecSQL("INSERT INTO users VALUES (1, NULL, 'x@y')")
	require.ErrorIs(t, err, heap.ErrNullViolation)

	var ie *heap.InsertError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "name", ie.Column)

	tbl, _ := db.Table("users")
	assert.Zero(t, tbl.Len())
	_, _, found := tbl.Lookup("id", record.Integer(1))
	assert.False(t, found, "rejected row must not reach the index")
}

func TestExecutor_ArityAndTypeErrors(t *testing.T) {
	ex, _ := newUsersExecutor(t)

	_, err := ex.ExecSQL("INSERT INTO users VALUES (1, 'ann')")
	require.ErrorIs(t, err, heap.ErrArityMismatch)

	_, err = ex.ExecSQL("INSERT INTO users VALUES ('one', 'ann', NULL)")
	require.ErrorIs(t, err, heap.ErrTypeMismatch)
}

func TestExecutor_DuplicateColumnSchema(t *testing.T) {
	db := engine.NewDatabase()
	ex := NewExecutor(db)

	_, err := ex.ExecSQL("CREATE TABLE t (a INT, a TEXT)")
	require.ErrorIs(t, err, catalog.ErrDuplicateColumn)

	var se *catalog.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "a", se.Column)
	assert.False(t, db.HasTable("t"))
}

func TestExecutor_MultiplePrimaryKeys(t *testing.T) {
	db := engine.NewDatabase()
	ex := NewExecutor(db)

	_, err := ex.ExecSQL("CREATE TABLE t (a INT PRIMARY KEY, b INT PRIMARY KEY)")
	require.ErrorIs(t, err, catalog.ErrMultiplePrimaryKeys)
	assert.Empty(t, db.TableNames())
}

func TestExecutor_TableAlreadyExists(t *testing.T) {
	ex, db := newUsersExecutor(t)
	mustExec(t, ex, "INSERT INTO users VALUES (1, 'ann', NULL)")

	_, err := ex.ExecSQL("CREATE TABLE users (x INT)")
	require.ErrorIs(t, err, catalog.ErrTableAlreadyExists)

	tbl, _ := db.Table("users")
	assert.Equal(t, 1, tbl.Len(), "existing table must keep its rows")
}

func TestExecutor_UnknownTable(t *testing.T) {
	ex := NewExecutor(engine.NewDatabase())

	_, err := ex.ExecSQL("INSERT INTO ghost VALUES (1)")
	require.ErrorIs(t, err, catalog.ErrUnknownTable)
}

func TestExecutor_SyntaxErrorsPassThrough(t *testing.T) {
	ex := NewExecutor(engine.NewDatabase())

	_, err := ex.ExecSQL("CREATE TABLE t (a INT")
	var pe *parser.Error
	require.True(t, errors.As(err, &pe))

	_, err = ex.ExecSQL("INSERT INTO t VALUES ('open")
	var le *lexer.Error
	require.True(t, errors.As(err, &le))
}

func TestExecutor_FailuresAreIdempotent(t *testing.T) {
	ex, db := newUsersExecutor(t)
	mustExec(t, ex, "INSERT INTO users VALUES (1, 'ann', 'a@x')")

	bad := []string{
		"INSERT INTO users VALUES (1, 'again', NULL)",
		"INSERT INTO users VALUES (2, 'bob', 'a@x')",
		"INSERT INTO users VALUES (2, NULL, NULL)",
		"INSERT INTO users VALUES (2)",
		"INSERT INTO users (nope) VALUES (2)",
	}
	for i := 0; i < 2; i++ {
		for _, sql := range bad {
			_, err := ex.ExecSQL(sql)
			require.Error(t, err, sql)
		}
	}

	tbl, _ := db.Table("users")
	assert.Equal(t, 1, tbl.Len())
	require.NoError(t, tbl.CheckInvariants())

	// The same key succeeds once the earlier failures are out of the way.
	res := mustExec(t, ex, "INSERT INTO users VALUES (2, 'bob', 'b@x')")
	assert.Equal(t, heap.RowID(1), res.RowID)
}

type fakeDB struct {
	created []record.Schema
}

func (f *fakeDB) CreateTable(schema record.Schema) (*heap.Table, error) {
	f.created = append(f.created, schema)
	return heap.NewTable(schema), nil
}

func (f *fakeDB) Table(name string) (*heap.Table, error) {
	return nil, catalog.NewUnknownTable(name)
}

func (f *fakeDB) HasTable(string) bool { return false }

func TestExecutor_WithFakeDB(t *testing.T) {
	fake := &fakeDB{}
	ex := NewExecutorForTest(fake)

	_, err := ex.ExecSQL("CREATE TABLE t (a INT PRIMARY KEY)")
	require.NoError(t, err)
	require.Len(t, fake.created, 1)
	assert.Equal(t, "t", fake.created[0].Table)

	_, err = ex.ExecSQL("INSERT INTO t VALUES (1)")
	require.ErrorIs(t, err, catalog.ErrUnknownTable)
}
