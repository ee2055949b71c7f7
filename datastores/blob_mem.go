package datastores

import (
	"context"
	"slices"
	"sync"
)

// BlobInmem implements [Blob] in memory. Data does not survive the process.
type BlobInmem struct {
	mu   sync.Mutex
	data []byte
	set  bool

	// ReadErr and WriteErr, when set, are returned instead of touching the data.
	ReadErr  error
	WriteErr error
}

var _ Blob = (*BlobInmem)(nil)

// NewBlobInmem returns a blob preloaded with data, or an empty one if data is nil.
func NewBlobInmem(data []byte) *BlobInmem {
	return &BlobInmem{data: slices.Clone(data), set: data != nil}
}

func (b *BlobInmem) Read(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return nil, b.ReadErr
	}
	if !b.set {
		return nil, ErrBlobNotExist
	}
	return slices.Clone(b.data), nil
}

func (b *BlobInmem) Write(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.data, b.set = slices.Clone(data), true
	return nil
}

func (b *BlobInmem) Ping(context.Context) error { return nil }

func (b *BlobInmem) Close() error { return nil }
