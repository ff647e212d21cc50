package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/identity-service/internal/domain"
)

// ErrInvalidToken is the single failure the codec reports for any
// rejected token. Malformed structure, bad signature, expiry, and
// wrong algorithm all collapse here so callers cannot probe which
// check failed.
var ErrInvalidToken = errors.New("invalid token")

// TokenCodec issues and verifies signed bearer tokens. It holds the
// only copy of the signing secret and performs no I/O.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec builds a codec over the given signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Claims is the JWT payload. Subject carries the account email, uid
// and role are embedded so downstream code never re-derives them from
// any other source once a token decodes.
type Claims struct {
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a claim set for the subject, valid for ttl from now.
func (tc *TokenCodec) Issue(subject string, userID int64, role domain.Role, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies signature and expiry and returns the claims. Any
// rejection reason maps to ErrInvalidToken.
func (tc *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tc.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate is the boolean convenience over Decode.
func (tc *TokenCodec) Validate(tokenStr string) bool {
	_, err := tc.Decode(tokenStr)
	return err == nil
}
