package datastores

import (
	"context"
	"errors"
)

// Blob is a durable slot holding one opaque artifact.
type Blob interface {
	// Read returns the stored bytes, or [ErrBlobNotExist] if nothing was ever written.
	Read(context.Context) ([]byte, error)
	// Write replaces the stored bytes entirely.
	Write(context.Context, []byte) error
	// Ping reports whether the backend is reachable.
	Ping(context.Context) error
	Close() error
}

var ErrBlobNotExist = errors.New("blob: does not exist")
