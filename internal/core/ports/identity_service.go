package ports

import (
	"context"

	"github.com/inkpost/blog-system/internal/core/domain"
)

// IdentityProvider exposes the active session identity.
type IdentityProvider interface {
	CurrentIdentity() (*domain.Identity, bool)
}

// IdentityService authenticates and tracks the single session identity.
type IdentityService interface {
	IdentityProvider
	Login(ctx context.Context, email, secret string) (*domain.Identity, error)
	Register(ctx context.Context, email, secret, name string) (*domain.Identity, error)
	// Logout is a no-op when nobody is logged in.
	Logout(ctx context.Context)
	IsAuthenticated() bool
}

// TokenIssuer signs bearer tokens naming an identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
