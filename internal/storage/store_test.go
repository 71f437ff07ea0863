// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.NotEmpty(t, store.SessionID())
}

func TestHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.AppendHistory("help"))
	require.NoError(t, store.AppendHistory("set-var greeting hello"))
	require.NoError(t, store.AppendHistory("echo $greeting"))

	lines, err := store.RecentHistory(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"help", "set-var greeting hello", "echo $greeting"}, lines)
}

func TestRecentHistoryLimitKeepsNewest(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.AppendHistory("first"))
	require.NoError(t, store.AppendHistory("second"))
	require.NoError(t, store.AppendHistory("third"))

	lines, err := store.RecentHistory(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "third"}, lines)
}

func TestClearHistory(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.AppendHistory("help"))
	require.NoError(t, store.ClearHistory())

	lines, err := store.RecentHistory(10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestVariablesUpsert(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveVariable("greeting", "hello"))
	require.NoError(t, store.SaveVariable("greeting", "goodbye"))
	require.NoError(t, store.SaveVariable("count", "3"))

	vars, err := store.Variables()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"greeting": "goodbye", "count": "3"}, vars)
}

func TestDeleteVariable(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveVariable("greeting", "hello"))
	require.NoError(t, store.DeleteVariable("greeting"))
	require.NoError(t, store.DeleteVariable("never-existed"))

	vars, err := store.Variables()
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestClosedStoreReturnsErrClosed(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.AppendHistory("help"), ErrClosed)
	_, err := store.RecentHistory(1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.SaveVariable("a", "b"), ErrClosed)
}
