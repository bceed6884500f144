package model

import (
	"context"
)

// Storage is the durable key/value store backing the credential store.
// Get returns ErrNotFound when the key is absent. Delete of an absent key
// is not an error.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
