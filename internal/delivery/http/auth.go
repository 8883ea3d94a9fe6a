package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "finance-trivia"

var ErrInvalidToken = errors.New("invalid player token")

// Claims identify a player. The subject is the player ID.
type Claims struct {
	jwt.RegisteredClaims
}

// AuthService issues and verifies HS256 player tokens.
type AuthService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewAuthService(key []byte, ttl time.Duration) *AuthService {
	return &AuthService{key: key, ttl: ttl, now: time.Now}
}

// Issue creates a new player and returns its ID with a signed token.
func (a *AuthService) Issue() (playerID, token string, expiresAt time.Time, err error) {
	now := a.now()
	playerID = uuid.NewString()
	expiresAt = now.Add(a.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   playerID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return playerID, token, expiresAt, nil
}

// Parse verifies token and returns its claims.
func (a *AuthService) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey string

const ctxKeyPlayer ctxKey = "player"

func withPlayer(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, ctxKeyPlayer, playerID)
}

// PlayerFromContext returns the authenticated player ID.
func PlayerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyPlayer).(string); ok {
		return v
	}
	return ""
}

// JWTMiddleware rejects requests without a valid bearer token.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "bad token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withPlayer(r.Context(), claims.Subject)))
		})
	}
}
