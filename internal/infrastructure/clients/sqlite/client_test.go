package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.db")

	client, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
	assert.Equal(t, path, client.Path())
}

func TestOpenAcceptsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	client, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.DB().Exec(`CREATE TABLE t (id TEXT PRIMARY KEY)`)
	assert.NoError(t, err)
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestErrorClassification(t *testing.T) {
	client, err := Open(context.Background(), filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, err = client.DB().Exec(`CREATE TABLE t (id TEXT PRIMARY KEY, name TEXT UNIQUE)`)
	require.NoError(t, err)
	_, err = client.DB().Exec(`INSERT INTO t (id, name) VALUES ('1', 'a')`)
	require.NoError(t, err)

	_, err = client.DB().Exec(`INSERT INTO t (id, name) VALUES ('2', 'a')`)
	assert.True(t, IsUniqueViolation(err))

	_, err = client.DB().Query(`SELECT * FROM nope`)
	assert.True(t, IsMissingTable(err))
	assert.False(t, IsUniqueViolation(nil))
}
