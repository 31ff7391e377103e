package ports

import (
	"context"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
)

// AuthAPI is the slice of the ScoreTalk API the session store depends on.
type AuthAPI interface {
	// Register creates an account. It does not establish a session.
	Register(ctx context.Context, username, nickname, password string) (*domain.User, error)
	// Token exchanges credentials for a bearer token.
	Token(ctx context.Context, username, password string) (string, error)
	// Me fetches the profile of the currently authenticated user.
	Me(ctx context.Context) (*domain.User, error)
}
