// Package metadata is the client's persisted key-value storage. The credential
// store keeps the session token and identity here so a restart does not force
// a new login.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
