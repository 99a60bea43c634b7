package sqlrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/sqlrite/internal/record"
)

func TestDB_EndToEnd(t *testing.T) {
	db := Open()

	_, err := db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT UNIQUE);")
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, db.Tables())

	for _, sql := range []string{
		"INSERT INTO users VALUES (1, 'ann', 'ann@x.io');",
		"INSERT INTO users VALUES (2, 'bob', NULL);",
		"INSERT INTO users (name) VALUES ('cy');",
	} {
		_, err := db.Exec(sql)
		require.NoError(t, err, sql)
	}

	tbl, err := db.Database().Table("users")
	require.NoError(t, err)
	row, _, ok := tbl.Lookup("id", record.Integer(3))
	require.True(t, ok)
	assert.Equal(t, record.Text("cy"), row[1])

	schema, err := db.Schema("users")
	require.NoError(t, err)
	assert.Equal(t, 3, schema.NumCols())
}

func TestDB_ErrorClassification(t *testing.T) {
	db := Open()
	_, err := db.Exec("CREATE TABLE t (a INT PRIMARY KEY, b TEXT NOT NULL)")
	require.NoError(t, err)

	cases := []struct {
		sql   string
		check func(error) bool
	}{
		{"INSERT INTO t VALUES (1, 'x", IsLexError},
		{"INSERT INTO t VALUES (1 'x')", IsParseError},
		{"SELECT a FROM t", IsParseError},
		{"CREATE TABLE t (z INT)", IsSchemaError},
		{"CREATE TABLE u (a INT, a INT)", IsSchemaError},
		{"INSERT INTO nope VALUES (1)", IsSchemaError},
		{"INSERT INTO t VALUES (1, NULL)", IsInsertError},
		{"INSERT INTO t VALUES (1)", IsInsertError},
	}
	for _, tc := range cases {
		_, err := db.Exec(tc.sql)
		require.Error(t, err, tc.sql)
		assert.True(t, tc.check(err), "%s: %v", tc.sql, err)
	}

	assert.False(t, IsInsertError(nil))
}
