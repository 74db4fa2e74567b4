package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hireboard/hireboard/internal/shared"
)

var (
	// ErrInvalidToken indicates a malformed token or one whose signature does not verify.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrExpiredToken indicates a correctly signed token past its expiry.
	ErrExpiredToken = errors.New("auth: token expired")
	// ErrRevokedToken indicates a token presented after logout.
	ErrRevokedToken = errors.New("auth: token revoked")
	// errNoCredential indicates neither the header nor the cookie carried a token.
	errNoCredential = errors.New("auth: no credential")
)

// User holds the credential fields needed to log in.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         shared.Role
}

// Claims is the signed claim set inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	Role shared.Role `json:"role"`
}

// Token is an issued session token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}
