package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapgo/blobstore"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, Options{NoSync: true})
	require.NoError(t, err)
	return s
}

func TestStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	s := openTestStore(t, path)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "dump-1.msp", []byte{1, 2, 3}))
	require.NoError(t, s.Put(ctx, "dump-2.json", []byte("{}")))
	require.NoError(t, s.Put(ctx, "other.cbor", []byte{0xa0}))

	got, err := s.Get(ctx, "dump-1.msp")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	names, err := s.List(ctx, "dump-")
	require.NoError(t, err)
	assert.Equal(t, []string{"dump-1.msp", "dump-2.json"}, names)

	require.NoError(t, s.Delete(ctx, "dump-1.msp"))
	require.NoError(t, s.Delete(ctx, "dump-1.msp"))
	_, err = s.Get(ctx, "dump-1.msp")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	assert.Error(t, s.Put(ctx, "", []byte("x")))
	require.NoError(t, s.Close())

	// Reopen and check durability.
	s = openTestStore(t, path)
	defer s.Close()
	got, err = s.Get(ctx, "dump-2.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestStore_CustomBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.db")
	ctx := context.Background()

	a, err := Open(path, Options{Bucket: "a", NoSync: true})
	require.NoError(t, err)
	require.NoError(t, a.Put(ctx, "k", []byte("a")))
	require.NoError(t, a.Close())

	b, err := Open(path, Options{Bucket: "b", NoSync: true})
	require.NoError(t, err)
	defer b.Close()
	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
