package ports

import "context"

// TokenStore is the durable local storage for the session's bearer token.
// It holds exactly one entry under a fixed key. Load returns an empty string
// and no error when no token has been saved.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
