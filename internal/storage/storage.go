// Package storage contains the durable per-client key/value storage used to
// keep a browser's session across process restarts and controller eviction.
// Every driver namespaces keys by client id; clients never see each other's data.
package storage

import (
	"context"
	"errors"
)

// Well-known keys written by the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrClientIDRequired is returned when a call omits the client id.
var ErrClientIDRequired = errors.New("client id is required")

// Storage is a durable key/value store scoped by client id.
type Storage interface {
	// Load returns every live key for the client. A client with no data yields an empty map.
	Load(ctx context.Context, clientID string) (map[string]string, error)
	// Save writes all values for the client atomically.
	Save(ctx context.Context, clientID string, values map[string]string) error
	// Remove deletes the given keys. Missing keys are not an error.
	Remove(ctx context.Context, clientID string, keys ...string) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
