package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/habitly/backend/domain"
)

// Verifier resolves a bearer token to the identity it was issued for.
type Verifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// RemoteVerifier delegates verification to an external identity service over
// HTTP. The call carries the request context plus its own timeout so a slow
// verifier fails the request instead of hanging it.
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
}

// NewRemoteVerifier builds a verifier against the given verification endpoint.
func NewRemoteVerifier(endpoint string, timeout time.Duration) *RemoteVerifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	body, err := json.Marshal(verifyRequest{Token: token})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "encode verify request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "build verify request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "identity service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrUnauthorized
	default:
		return nil, domain.NewError(domain.ErrCodeInternal, "identity service error")
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "decode verify response", err)
	}

	ident := &domain.Identity{
		UserID: payload.UserID,
		Email:  payload.Email,
		Name:   payload.Name,
	}
	if !ident.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return ident, nil
}

// LocalVerifier validates HS256 tokens with a shared secret. Used in
// development where no identity service is running.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ident := &domain.Identity{}
	if userID, ok := claims["user_id"].(string); ok {
		ident.UserID = userID
	}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		ident.Name = name
	}
	if !ident.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return ident, nil
}
