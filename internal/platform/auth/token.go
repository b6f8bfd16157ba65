// Package auth issues and verifies the signed claim tokens returned by login.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// MinKeyLength is the shortest accepted HMAC-SHA256 signing key in bytes.
const MinKeyLength = 32

var (
	// ErrInvalidToken indicates a malformed token, bad signature or wrong issuer/audience.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Config holds token signing settings.
type Config struct {
	Key               string `env:"KEY,unset"`
	Issuer            string `env:"ISSUER" envDefault:"travel-profiles"`
	Audience          string `env:"AUDIENCE" envDefault:"travel-profiles-clients"`
	Subject           string `env:"SUBJECT" envDefault:"travel-profiles-access"`
	ExpirationMinutes int    `env:"TOKEN_EXPIRATION_MINUTES" envDefault:"60"`
}

// Validate checks the settings required to sign tokens.
func (c Config) Validate() error {
	if len(c.Key) < MinKeyLength {
		return fmt.Errorf("jwt key must be at least %d bytes", MinKeyLength)
	}
	if c.ExpirationMinutes <= 0 {
		return errors.New("jwt token expiration must be positive")
	}
	return nil
}

// Claims carried by an access token.
type Claims struct {
	CustomerID string `json:"CustomerId"`
	Name       string `json:"Name"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	subject  string
	ttl      time.Duration
	now      func() time.Time
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		subject:  cfg.Subject,
		ttl:      time.Duration(cfg.ExpirationMinutes) * time.Minute,
		now:      time.Now,
	}, nil
}

// Issue returns a signed token for the customer.
func (i *Issuer) Issue(customerID int64, name string) (string, error) {
	now := i.now()
	claims := &Claims{
		CustomerID: strconv.FormatInt(customerID, 10),
		Name:       name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   i.subject,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and checks signature, issuer, audience and validity window.
func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
