package datastores

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// BlobRedis implements [Blob] with a single Redis string key.
type BlobRedis struct {
	client redis.UniversalClient
	key    string
}

var _ Blob = (*BlobRedis)(nil)

func NewBlobRedis(client redis.UniversalClient, key string) *BlobRedis {
	return &BlobRedis{client: client, key: key}
}

func (b *BlobRedis) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotExist
	}
	return data, err
}

func (b *BlobRedis) Write(ctx context.Context, data []byte) error {
	return b.client.Set(ctx, b.key, data, 0).Err()
}

func (b *BlobRedis) Ping(ctx context.Context) error { return b.client.Ping(ctx).Err() }

func (b *BlobRedis) Close() error { return b.client.Close() }
