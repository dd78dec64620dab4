// Package storage abstracts where finished report artifacts live. The
// renderer writes through a Store so it never touches a concrete
// filesystem or bucket itself; tests use the in-memory store.
package storage

import (
	"context"
	"io"
)

// Store persists a finished artifact under a name and returns the URL
// it can be retrieved from afterwards. Save is all-or-nothing: on error
// no artifact exists under the name.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
