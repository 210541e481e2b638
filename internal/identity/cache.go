package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/repository"
)

// CachingVerifier wraps a Verifier with a short-lived cache keyed by token.
// Cache failures degrade to direct verification, never to a rejected request.
type CachingVerifier struct {
	next   Verifier
	cache  repository.IdentityCache
	logger *zap.Logger
}

func NewCachingVerifier(next Verifier, cache repository.IdentityCache, logger *zap.Logger) *CachingVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingVerifier{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (v *CachingVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if v.cache != nil {
		cached, err := v.cache.Get(ctx, token)
		if err == nil && cached.Valid() {
			return cached, nil
		}
		if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			v.logger.Warn("identity cache lookup failed", zap.Error(err))
		}
	}

	ident, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		if err := v.cache.Set(ctx, token, ident); err != nil {
			v.logger.Warn("identity cache store failed", zap.Error(err))
		}
	}
	return ident, nil
}
