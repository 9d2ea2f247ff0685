// Package storage holds the backends uploaded files are written to.
package storage

import (
	"context"
	"io"
)

// Store persists an object under key and returns the reference clients use
// to fetch it.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
