package datastores_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/contacts-directory/datastores"
)

// testBlob checks the behavior every [ds.Blob] shares.
func testBlob(t *testing.T, blob ds.Blob) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, blob.Ping(ctx))

	_, err := blob.Read(ctx)
	require.ErrorIs(t, err, ds.ErrBlobNotExist)

	require.NoError(t, blob.Write(ctx, []byte(`[1]`)))
	data, err := blob.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `[1]`, string(data))

	require.NoError(t, blob.Write(ctx, []byte(`[]`)))
	data, err = blob.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(data))

	// the store layer works the same on top of any backend
	s := ds.NewContactsJSON(blob)
	c, err := s.Add(ctx, "Ann", "123")
	require.NoError(t, err)
	got, err := ds.NewContactsJSON(blob).Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, got)

	require.NoError(t, blob.Close())
}

func TestBlobInmem(t *testing.T) {
	testBlob(t, ds.NewBlobInmem(nil))
}

func TestBlobFile(t *testing.T) {
	testBlob(t, ds.NewBlobFile(filepath.Join(t.TempDir(), "nested", "contacts.json")))
}

func TestBlobFile_WriteLeavesNoTemporaryFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blob := ds.NewBlobFile(filepath.Join(dir, "contacts.json"))

	for range 3 {
		require.NoError(t, blob.Write(ctx, []byte(`[]`)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "contacts.json", entries[0].Name())

	info, err := entries[0].Info()
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestBlobFile_WriteFailureCleansUp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// a non-empty directory squatting on the target makes the rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "contacts.json", "child"), 0o750))
	blob := ds.NewBlobFile(filepath.Join(dir, "contacts.json"))
	require.Error(t, blob.Write(ctx, []byte(`["new"]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file should be removed")
	require.True(t, entries[0].IsDir())
}

func TestBlobFile_PingDoesNotCreateDirectories(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "a", "b")
	blob := ds.NewBlobFile(filepath.Join(dir, "contacts.json"))

	require.NoError(t, blob.Ping(ctx))
	_, err := os.Stat(dir)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, blob.Write(ctx, []byte(`[]`)))
	require.DirExists(t, dir)
}

func TestBlobFile_PingNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	blob := ds.NewBlobFile(filepath.Join(file, "contacts.json"))
	require.Error(t, blob.Ping(context.Background()))
}

func TestBlobSQLite(t *testing.T) {
	blob, err := ds.OpenBlobSQLite(filepath.Join(t.TempDir(), "contacts.db"), "contacts")
	require.NoError(t, err)
	testBlob(t, blob)
}

func TestBlobSQLite_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contacts.db")

	a, err := ds.OpenBlobSQLite(path, "a")
	require.NoError(t, err)
	defer a.Close()
	b, err := ds.OpenBlobSQLite(path, "b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Write(ctx, []byte(`["a"]`)))
	_, err = b.Read(ctx)
	require.ErrorIs(t, err, ds.ErrBlobNotExist)
}

func TestBlobSQLite_Validation(t *testing.T) {
	_, err := ds.OpenBlobSQLite("", "contacts")
	require.Error(t, err)
	_, err = ds.OpenBlobSQLite(":memory:", " ")
	require.Error(t, err)
}

func TestBlobRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	key := "contacts-test:" + t.Name()
	require.NoError(t, client.Del(context.Background(), key).Err())
	testBlob(t, ds.NewBlobRedis(client, key))
}
