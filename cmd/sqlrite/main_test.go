package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/sqlrite"
)

func TestFeed(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(sqlrite.Open(), &out)

	script := `-- users
CREATE TABLE users (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL
);
INSERT INTO users VALUES (1, 'ann');
INSERT INTO users (name) VALUES ('bob')
`
	require.NoError(t, feed(sh, strings.NewReader(script)))
	assert.Equal(t, "table created\nrow inserted: id 0\nrow inserted: id 1\n", out.String())
	assert.Zero(t, sh.Failures())
}

func TestFeed_StopsAtExit(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(sqlrite.Open(), &out)

	require.NoError(t, feed(sh, strings.NewReader("CREATE TABLE t (a INT);\n.exit\nCREATE TABLE u (a INT);\n")))
	assert.Equal(t, "table created\n", out.String())
}

func TestRunScript_ReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE t (a INT, a INT);\n"), 0o644))

	var out bytes.Buffer
	err := runScript(NewShell(sqlrite.Open(), &out), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 statement(s) failed")
	assert.Contains(t, out.String(), "duplicate column")
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, setupLogger("debug", &buf))
	require.Error(t, setupLogger("loud", &buf))
}
