package repository

import (
	"context"

	"github.com/habitly/backend/domain"
)

// IdentityCache stores verified token identities for a short window so hot
// tokens do not hit the identity service on every request.
type IdentityCache interface {
	Get(ctx context.Context, token string) (*domain.Identity, error)
	Set(ctx context.Context, token string, identity *domain.Identity) error
	Invalidate(ctx context.Context, token string) error
}
