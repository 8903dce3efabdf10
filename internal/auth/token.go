package auth

import (
	"errors"
	"time"

	"github.com/article-share-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single outcome for any token verification failure.
// Callers must not distinguish malformed, expired and badly signed tokens
// for the client.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the session claims carried by a bearer token
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenCodec mints and validates bearer tokens
type TokenCodec interface {
	Issue(user *models.User) (string, error)
	Verify(token string) (*Claims, error)
}

// JWTCodec implements TokenCodec with HMAC-SHA256 signed JWTs.
// The signing key is process-wide configuration, loaded once at startup.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec creates a codec signing with secret; tokens expire after ttl
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

// Issue mints a signed token encoding the user's id, username and admin flag
func (c *JWTCodec) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify decodes a token and checks its signature and expiry
func (c *JWTCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
