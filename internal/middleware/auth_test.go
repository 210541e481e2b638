package middleware

import (
	"context"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/habitly/backend/domain"
)

type fakeVerifier struct {
	ident *domain.Identity
	err   error
	seen  string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	f.seen = token
	return f.ident, f.err
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{ident: &domain.Identity{UserID: "u1", Email: "u1@example.com"}},
			wantStatus: fasthttp.StatusOK,
			wantUserID: "u1",
		},
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &fakeVerifier{},
			wantStatus: fasthttp.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			verifier:   &fakeVerifier{},
			wantStatus: fasthttp.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			verifier:   &fakeVerifier{err: domain.ErrUnauthorized},
			wantStatus: fasthttp.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handlerUserID string
			handlerCalled := false
			next := func(ctx *fasthttp.RequestCtx) {
				handlerCalled = true
				handlerUserID = string(ctx.Request.Header.Peek(HeaderUserID))
			}

			var ctx fasthttp.RequestCtx
			if tt.authHeader != "" {
				ctx.Request.Header.Set("Authorization", tt.authHeader)
			}

			Auth(tt.verifier, nil)(next)(&ctx)

			if tt.wantStatus == fasthttp.StatusOK {
				if !handlerCalled {
					t.Fatal("handler was not called")
				}
				if handlerUserID != tt.wantUserID {
					t.Errorf("user id header = %q, want %q", handlerUserID, tt.wantUserID)
				}
				return
			}
			if handlerCalled {
				t.Fatal("handler called despite auth failure")
			}
			if got := ctx.Response.StatusCode(); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestAuthStripsSpoofedIdentityHeaders(t *testing.T) {
	verifier := &fakeVerifier{err: domain.ErrUnauthorized}

	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set(HeaderUserID, "attacker")
	ctx.Request.Header.Set("Authorization", "Bearer bad")

	Auth(verifier, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Fatal("handler called")
	})(&ctx)

	if got := string(ctx.Request.Header.Peek(HeaderUserID)); got != "" {
		t.Errorf("spoofed header survived: %q", got)
	}
}
