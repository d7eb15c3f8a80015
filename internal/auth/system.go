package auth

import (
	"context"

	"github.com/mcggEz/gradalyze/internal/users"
)

// System defines the public contract for authentication operations.
type System interface {
	Handler() *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ProfileByEmail(ctx context.Context, email string) (*users.User, error)
	Verify(token string) (*Claims, error)
}
