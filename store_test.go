package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "token", []byte("tok-1")))

	value, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(value))

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	// deleting an absent key is a no-op
	assert.NoError(t, store.Delete(ctx, "token"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	value := []byte("tok-1")
	require.NoError(t, store.Set(ctx, "token", value))
	value[0] = 'x'

	stored, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(stored))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "store.json")
	ctx := context.Background()

	store, err := session.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "token", []byte("tok-1")))
	require.NoError(t, store.Set(ctx, "user", []byte(`{"_id":"usr-1"}`)))

	// values survive a new store over the same file
	reopened, err := session.NewFileStore(path)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(value))

	require.NoError(t, reopened.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	user, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"usr-1"}`, string(user))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := session.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrKeyNotFound)
}
