package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("AUTH_JWT_SECRET is required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// Claims is what an issued bearer token carries.
type Claims struct {
	UserID    snowflake.ID
	TwoFactor bool
}

type jwtClaims struct {
	UserID    string `json:"user_id"`
	TwoFactor bool   `json:"two_factor,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies expiring bearer tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(cfg config.Config) (*Codec, error) {
	if cfg.AuthJWTSecret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.AuthTokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(cfg.AuthJWTSecret), ttl: ttl}, nil
}

// Issue signs a token for the user, returning the token and its expiry.
func (c *Codec) Issue(userID snowflake.ID, twoFactor bool) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)
	claims := jwtClaims{
		UserID:    userID.String(),
		TwoFactor: twoFactor,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (c *Codec) Verify(raw string) (Claims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := snowflake.ParseString(claims.UserID)
	if err != nil || userID == 0 {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: userID, TwoFactor: claims.TwoFactor}, nil
}
