package middleware

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/habitly/backend/api/transport"
	"github.com/habitly/backend/domain"
	"github.com/habitly/backend/internal/identity"
)

// Header names the auth middleware uses to hand the verified identity to
// handlers. Inbound values are stripped first so clients cannot spoof them.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
)

// Auth verifies the bearer token on every request before the handler runs.
// Requests without a well-formed Authorization header are rejected with 401.
func Auth(verifier identity.Verifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.Request.Header.Del(HeaderUserID)
			ctx.Request.Header.Del(HeaderUserEmail)
			ctx.Request.Header.Del(HeaderUserName)

			token := extractToken(ctx)
			if token == "" {
				respondUnauthorized(ctx, "missing bearer token")
				return
			}

			ident, err := verifier.Verify(context.Background(), token)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				respondUnauthorized(ctx, "invalid token")
				return
			}

			ctx.Request.Header.Set(HeaderUserID, ident.UserID)
			if ident.Email != "" {
				ctx.Request.Header.Set(HeaderUserEmail, ident.Email)
			}
			if ident.Name != "" {
				ctx.Request.Header.Set(HeaderUserName, ident.Name)
			}

			next(ctx)
		}
	}
}

func respondUnauthorized(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), message, nil))
	ctx.SetBody(body)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
