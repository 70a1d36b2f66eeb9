package repo

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"
)

func newTestBlobStorage(t *testing.T, prefix string) *BlobStorage {
	t.Helper()
	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })
	return NewBlobStorageFromBucket(bucket, prefix)
}

func newTestFilesystemStorage(t *testing.T) *FilesystemStorage {
	t.Helper()
	storage, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func testStorages(t *testing.T) map[string]Storage {
	t.Helper()
	return map[string]Storage{
		"filesystem":  newTestFilesystemStorage(t),
		"blob":        newTestBlobStorage(t, ""),
		"blob prefix": newTestBlobStorage(t, "sitemaps"),
	}
}

func TestStorage_WriteRead(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, storage.Write(ctx, "sitemap.xml", []byte("original")))
			require.NoError(t, storage.Write(ctx, "sitemap.xml", []byte("updated")))

			data, err := storage.Read(ctx, "sitemap.xml")
			require.NoError(t, err)
			assert.Equal(t, []byte("updated"), data)
		})
	}
}

func TestStorage_ReadNotFound(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			_, err := storage.Read(t.Context(), "nonexistent-key")
			require.Error(t, err)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestStorage_List(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			for _, key := range []string{"prefix-b", "prefix-a", "prefix-c", "other-key"} {
				require.NoError(t, storage.Write(ctx, key, []byte(key)))
			}

			keys, err := storage.List(ctx, "prefix-")
			require.NoError(t, err)
			assert.Equal(t, []string{"prefix-c", "prefix-b", "prefix-a"}, keys)

			keys, err = storage.List(ctx, "nonexistent-")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStorage_Delete(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, storage.Write(ctx, "robots.txt", []byte("User-agent: *")))
			require.NoError(t, storage.Delete(ctx, "robots.txt"))

			_, err := storage.Read(ctx, "robots.txt")
			assert.ErrorIs(t, err, os.ErrNotExist)

			// idempotent
			require.NoError(t, storage.Delete(ctx, "robots.txt"))
		})
	}
}

func TestStorage_Concurrent(t *testing.T) {
	for name, storage := range testStorages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = storage.Write(ctx, "concurrent-key", []byte("data"))
					_, _ = storage.Read(ctx, "concurrent-key")
					_, _ = storage.List(ctx, "concurrent-")
				}()
			}
			wg.Wait()
			data, err := storage.Read(ctx, "concurrent-key")
			require.NoError(t, err)
			assert.Equal(t, []byte("data"), data)
		})
	}
}

func TestBlobStorage_PrefixIsolation(t *testing.T) {
	ctx := t.Context()
	bucket, err := blob.OpenBucket(ctx, "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })

	staging := NewBlobStorageFromBucket(bucket, "staging/")
	production := NewBlobStorageFromBucket(bucket, "production")
	require.NoError(t, staging.Write(ctx, "sitemap.xml", []byte("staging")))
	require.NoError(t, production.Write(ctx, "sitemap.xml", []byte("production")))

	data, err := staging.Read(ctx, "sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, []byte("staging"), data)

	keys, err := production.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"sitemap.xml"}, keys)

	exists, err := bucket.Exists(ctx, "production/sitemap.xml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFilesystemStorage_NestedKey(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	require.NoError(t, storage.Write(t.Context(), "public/sitemap.xml", []byte("x")))

	data, err := os.ReadFile(storage.Dir() + "/public/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)

	// not listed, List is not recursive
	keys, err := storage.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBlobProvider(t *testing.T) {
	assert.Equal(t, "Google Cloud Storage", BlobProvider("gs://bucket"))
	assert.Equal(t, "AWS S3", BlobProvider("s3://bucket"))
	assert.Equal(t, "Azure Blob Storage", BlobProvider("azblob://bucket"))
	assert.Equal(t, "unknown", BlobProvider("mem://"))
}
