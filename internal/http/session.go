package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/store"
)

const sessionTTL = 7 * 24 * time.Hour

// Sessions maps bearer tokens to user ids in the KV. When authentication is
// disabled, or a request carries no usable token, Resolve hands back the
// fixed guest identity: reads must keep working without a login.
type Sessions struct {
	kv          store.KV
	authEnabled bool
}

func NewSessions(kv store.KV, authEnabled bool) *Sessions {
	return &Sessions{kv: kv, authEnabled: authEnabled}
}

func (s *Sessions) Issue(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	if err := s.kv.Set(ctx, "session:"+token, userID, sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.kv.Del(ctx, "session:"+token)
}

// Resolve returns the caller's user id, falling back to guest.
func (s *Sessions) Resolve(r *http.Request) string {
	if !s.authEnabled {
		return domain.GuestUserID
	}
	token := bearerToken(r)
	if token == "" {
		return domain.GuestUserID
	}
	userID, err := s.kv.Get(r.Context(), "session:"+token)
	if err != nil {
		return domain.GuestUserID
	}
	return userID
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
