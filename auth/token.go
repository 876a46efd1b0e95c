package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/diewo77/go-hr/gate"
)

// DefaultTokenTTL is the validity window of an issued token.
const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token is expired")
)

// claims is the JWT payload: the subject is the identity id.
type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTIssuer signs and verifies HS256 tokens carrying an identity id and role.
// It implements gate.Verifier.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTIssuer creates an issuer. A non-positive ttl falls back to DefaultTokenTTL.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, issuer: "go-hr", now: time.Now}
}

// WithClock returns a copy of the issuer using now as its time source.
func (j *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	cp := *j
	cp.now = now
	return &cp
}

// Issue signs a token for p and returns it with its expiry.
func (j *JWTIssuer) Issue(p gate.Principal) (string, time.Time, error) {
	if p.IsZero() || !p.Role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token: invalid principal")
	}
	issued := j.now().UTC()
	exp := issued.Add(j.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role: string(p.Role),
	})
	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the principal.
func (j *JWTIssuer) Verify(token string) (gate.Principal, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return gate.Principal{}, mapJWTError(err)
	}
	role, ok := gate.ParseRole(parsed.Role)
	if !ok || parsed.Subject == "" {
		return gate.Principal{}, ErrInvalidToken
	}
	return gate.Principal{ID: parsed.Subject, Role: role}, nil
}

// mapJWTError translates jwt library errors to package errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrExpiredToken
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
