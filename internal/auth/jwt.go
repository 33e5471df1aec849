package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed credential lifetime.
const TokenTTL = time.Hour

// ErrNoSecret means the signing secret was never configured. It is a startup
// configuration failure, not something a request can recover from.
var ErrNoSecret = errors.New("jwt secret is not configured")

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Guard issues and verifies the bearer credentials gating protected routes.
// It is stateless per call; the secret and TTL are fixed at construction.
type Guard struct {
	secret []byte
	ttl    time.Duration
}

func NewGuard(secret string, ttl time.Duration) (*Guard, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Guard{secret: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed credential embedding userID and an expiry ttl from
// now.
func (g *Guard) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(g.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(g.secret)
}

// Verify checks the signature and expiry and returns the embedded user id.
// Malformed, tampered and expired tokens all fail the same way; callers
// surface a uniform Unauthorized regardless of the sub-cause. Verify does not
// re-check that the user still exists, so a deleted user's still-unexpired
// token keeps working until it expires.
func (g *Guard) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	return claims.UserID, nil
}
