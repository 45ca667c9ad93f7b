// Package token issues and verifies the time-limited credentials that
// authorize one participant to join one channel.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/forexorbit/academy-calls/internal/domain"
)

const issuerName = "academy-calls"

// DefaultTTL is the token validity window from issuance.
const DefaultTTL = time.Hour

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carried by a channel token.
type Claims struct {
	jwt.StandardClaims
	Channel string      `json:"chan"`
	Role    domain.Role `json:"role,omitempty"`
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token binding participant uid to channel for the issuer's TTL.
func (i *Issuer) Issue(channel domain.ChannelName, uid domain.UserID, role domain.Role) (string, error) {
	now := jwt.TimeFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuerName,
			Subject:   string(uid),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
		Channel: string(channel),
		Role:    role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign channel token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and that the token was minted for
// the given channel. An expired token is unrecoverable; callers must
// fetch a fresh one.
func (i *Issuer) Verify(tokenStr string, channel domain.ChannelName) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Channel != string(channel) {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
