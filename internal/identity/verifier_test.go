package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/habitly/backend/domain"
)

func TestRemoteVerifier(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     interface{}
		wantErr  domain.ErrorCode
		wantUser string
	}{
		{
			name:     "valid token",
			status:   http.StatusOK,
			body:     map[string]string{"user_id": "u1", "email": "u1@example.com", "name": "User One"},
			wantUser: "u1",
		},
		{
			name:    "rejected token",
			status:  http.StatusUnauthorized,
			body:    map[string]string{"error": "invalid token"},
			wantErr: domain.ErrCodeUnauthorized,
		},
		{
			name:    "verifier failure",
			status:  http.StatusInternalServerError,
			body:    map[string]string{"error": "boom"},
			wantErr: domain.ErrCodeInternal,
		},
		{
			name:    "missing user id in response",
			status:  http.StatusOK,
			body:    map[string]string{"email": "u1@example.com"},
			wantErr: domain.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req verifyRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
					t.Errorf("verifier received malformed request: %v", err)
				}
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer srv.Close()

			v := NewRemoteVerifier(srv.URL, time.Second)
			ident, err := v.Verify(context.Background(), "some-token")

			if tt.wantErr != "" {
				if !domain.IsDomainError(err, tt.wantErr) {
					t.Fatalf("Verify() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ident.UserID != tt.wantUser {
				t.Errorf("UserID = %q, want %q", ident.UserID, tt.wantUser)
			}
		})
	}
}

func TestRemoteVerifierUnreachable(t *testing.T) {
	v := NewRemoteVerifier("http://127.0.0.1:1/verify", 200*time.Millisecond)
	_, err := v.Verify(context.Background(), "token")
	if !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Fatalf("Verify() error = %v, want INTERNAL", err)
	}
}

func TestLocalVerifier(t *testing.T) {
	const secret = "test-secret"

	sign := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return signed
	}

	v := NewLocalVerifier(secret)

	t.Run("valid token", func(t *testing.T) {
		ident, err := v.Verify(context.Background(), sign(jwt.MapClaims{
			"user_id": "u1",
			"email":   "u1@example.com",
			"name":    "User One",
		}))
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if ident.UserID != "u1" || ident.Email != "u1@example.com" {
			t.Errorf("identity = %+v", ident)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"})
		signed, _ := other.SignedString([]byte("other-secret"))
		if _, err := v.Verify(context.Background(), signed); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			t.Fatalf("Verify() error = %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("missing user_id claim", func(t *testing.T) {
		if _, err := v.Verify(context.Background(), sign(jwt.MapClaims{"email": "x@example.com"})); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			t.Fatalf("Verify() error = %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := v.Verify(context.Background(), "not-a-jwt"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			t.Fatalf("Verify() error = %v, want UNAUTHORIZED", err)
		}
	})
}

type staticVerifier struct {
	ident *domain.Identity
	err   error
	calls int
}

func (s *staticVerifier) Verify(context.Context, string) (*domain.Identity, error) {
	s.calls++
	return s.ident, s.err
}

type mapCache struct {
	entries map[string]*domain.Identity
}

func (m *mapCache) Get(_ context.Context, token string) (*domain.Identity, error) {
	if ident, ok := m.entries[token]; ok {
		return ident, nil
	}
	return nil, domain.NewError(domain.ErrCodeNotFound, "identity not cached")
}

func (m *mapCache) Set(_ context.Context, token string, ident *domain.Identity) error {
	m.entries[token] = ident
	return nil
}

func (m *mapCache) Invalidate(_ context.Context, token string) error {
	delete(m.entries, token)
	return nil
}

func TestCachingVerifier(t *testing.T) {
	upstream := &staticVerifier{ident: &domain.Identity{UserID: "u1"}}
	cache := &mapCache{entries: map[string]*domain.Identity{}}
	v := NewCachingVerifier(upstream, cache, nil)

	for i := 0; i < 3; i++ {
		ident, err := v.Verify(context.Background(), "tok")
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if ident.UserID != "u1" {
			t.Errorf("UserID = %q", ident.UserID)
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream verifier called %d times, want 1", upstream.calls)
	}
}

func TestCachingVerifierDoesNotCacheFailures(t *testing.T) {
	upstream := &staticVerifier{err: domain.ErrUnauthorized}
	cache := &mapCache{entries: map[string]*domain.Identity{}}
	v := NewCachingVerifier(upstream, cache, nil)

	for i := 0; i < 2; i++ {
		if _, err := v.Verify(context.Background(), "bad"); !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			t.Fatalf("Verify() error = %v, want UNAUTHORIZED", err)
		}
	}
	if upstream.calls != 2 {
		t.Errorf("upstream verifier called %d times, want 2", upstream.calls)
	}
	if len(cache.entries) != 0 {
		t.Errorf("failure was cached: %v", cache.entries)
	}
}
