package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey struct{}

// Bearer rejects requests without a valid HMAC-signed JWT. An empty secret disables the check.
func Bearer(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(secret) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, token.Claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func Claims(ctx context.Context) (jwt.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(jwt.Claims)
	return c, ok
}

// signService signs an HS256 token for calls between the services.
func signService(secret []byte, subject string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return tok, claims.ExpiresAt.Time, err
}

// TokenSource hands out a service token and signs a new one shortly before the current one
// expires.
type TokenSource struct {
	secret  []byte
	subject string
	ttl     time.Duration
	margin  time.Duration
	now     func() time.Time

	mu    sync.Mutex
	token string
	exp   time.Time
}

func NewTokenSource(secret []byte, subject string, ttl time.Duration) *TokenSource {
	return &TokenSource{
		secret:  secret,
		subject: subject,
		ttl:     ttl,
		margin:  min(time.Minute, ttl/2),
		now:     time.Now,
	}
}

func (s *TokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(s.margin).Before(s.exp) {
		return s.token, nil
	}
	tok, exp, err := signService(s.secret, s.subject, now, s.ttl)
	if err != nil {
		return "", err
	}
	s.token, s.exp = tok, exp
	return tok, nil
}
