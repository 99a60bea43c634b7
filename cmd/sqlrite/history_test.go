package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	h := NewHistory(path)
	require.NoError(t, h.Load(10), "missing file is not an error")
	require.NoError(t, h.Append("CREATE TABLE t (\n  a INT\n);"))
	require.NoError(t, h.Append("   "))
	require.NoError(t, h.Append("INSERT INTO t VALUES (1);"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t ( a INT );\nINSERT INTO t VALUES (1);\n", string(data))

	again := NewHistory(path)
	require.NoError(t, again.Load(1))
	assert.Equal(t, []string{"INSERT INTO t VALUES (1);"}, again.Lines())
}

func TestHistory_EmptyPathIsNoop(t *testing.T) {
	h := NewHistory("")
	require.NoError(t, h.Load(5))
	require.NoError(t, h.Append("CREATE TABLE t (a INT);"))
	assert.Empty(t, h.Lines())
}
