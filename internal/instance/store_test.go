package instance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStored(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestStore_LoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeStored(t, dir, "inst1.json", `{"jobs": 2}`)

	raw, err := NewStore(dir).Load("inst1")
	require.NoError(t, err)

	n, ok := coerceInt(raw["jobs"])
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestStore_LoadDZN(t *testing.T) {
	dir := t.TempDir()
	writeStored(t, dir, "inst1.dzn", "jobs = 4;\n")

	raw, err := NewStore(dir).Load("inst1")
	require.NoError(t, err)
	assert.Equal(t, 4, raw["jobs"])
}

func TestStore_PrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeStored(t, dir, "inst1.json", `{"jobs": 1}`)
	writeStored(t, dir, "inst1.dzn", "jobs = 2;\n")

	raw, err := NewStore(dir).Load("inst1")
	require.NoError(t, err)

	n, ok := coerceInt(raw["jobs"])
	require.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestStore_NotFound(t *testing.T) {
	_, err := NewStore(t.TempDir()).Load("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	_, err := NewStore(t.TempDir()).Load("../secrets")
	require.ErrorIs(t, err, ErrNotFound)
}
