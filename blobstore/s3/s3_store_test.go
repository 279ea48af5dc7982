package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/snapgo/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-snapgo-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	t.Run("PutAndGet", func(t *testing.T) {
		name := "test.msp"
		data := make([]byte, 1024*1024) // 1MB
		_, _ = rand.Read(data)

		require.NoError(t, store.Put(ctx, name, data))

		blobs, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, blobs, name)

		got, err := store.Get(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		require.NoError(t, store.Delete(ctx, name))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "nonexistent")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
