package datastores

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BlobFile implements [Blob] with a single file on disk.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so a crash never leaves a half-written artifact behind.
type BlobFile struct {
	Path string
	Perm fs.FileMode
}

var _ Blob = (*BlobFile)(nil)

func NewBlobFile(path string) *BlobFile {
	return &BlobFile{Path: filepath.Clean(path), Perm: 0o600}
}

func (b *BlobFile) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotExist
	}
	return data, err
}

func (b *BlobFile) Write(_ context.Context, data []byte) (err error) {
	dir := filepath.Dir(b.Path)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(b.Perm); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path)
}

// Ping checks that the artifact can be written: its directory, or the
// nearest existing ancestor that Write would create it under, must be a
// directory. It never changes the filesystem.
func (b *BlobFile) Ping(_ context.Context) error {
	dir := filepath.Dir(b.Path)
	for {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			return nil
		case err == nil:
			return fmt.Errorf("%s: not a directory", dir)
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("%s: %w", filepath.Dir(b.Path), fs.ErrNotExist)
		}
		dir = parent
	}
}

func (b *BlobFile) Close() error { return nil }
