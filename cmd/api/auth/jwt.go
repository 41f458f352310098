// Package auth mints and verifies the admin tokens that guard every blog
// mutation. Tokens carry the actor id that ends up in the addedBy/updatedBy
// audit fields, so parsing is strict: wrong algorithm, wrong issuer, missing
// subject and expired tokens are all rejected.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	defaultIssuer = "blog-admin"
	defaultTTL    = 24 * time.Hour
)

var (
	ErrInvalidToken   = errors.New("invalid_token")
	ErrMissingSubject = errors.New("token_missing_subject")
	ErrMissingHeader  = errors.New("missing_authorization_header")
	ErrInvalidFormat  = errors.New("invalid_authorization_header")
)

// Claims is the typed payload of every token this backend issues. Subject is
// the actor id recorded on mutations; Role gates access to the admin routes.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens with a single shared secret.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManagerFromEnv builds a JWTManager from environment variables.
//
// - JWT_SECRET: HS256 signing secret (required)
// - JWT_ISSUER: iss claim (optional, defaults to "blog-admin")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = defaultIssuer
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    defaultTTL,
	}, nil
}

// Sign issues a token for userID with the given role.
func (m *JWTManager) Sign(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies tokenString and returns its claims. Only HS256 tokens from
// this manager's issuer are accepted.
func (m *JWTManager) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &claims, nil
}

// TokenFromHeader extracts the bearer token from an Authorization header
// value.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidFormat
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidFormat
	}

	return token, nil
}
