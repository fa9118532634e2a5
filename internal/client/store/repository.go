// Package store persists the session triple (user record, access token,
// refresh token) in a local SQLite database. It is the client-side stand-in
// for durable browser storage: a side-effect target, not a second source of
// truth once the in-memory session is hydrated.
package store

import "context"

// Keys of the values the session layer persists. They are set and cleared
// together as a logical unit on every session transition.
const (
	KeyUser         = "user"
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Repository is a small key/value store. A missing key yields a nil value
// and no error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
