package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claims structure issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"` // "authenticated" or "anon"
}

// GetUserID returns the user id from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// TokenVerifier validates bearer tokens. The abstraction keeps the
// middleware agnostic to where the keys come from.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns its claims.
	// Returns an error if the token is invalid, expired, or has an
	// invalid signature.
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
