package hobbies

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims is the read interface over validated token claims. Handlers and
// middleware work against this rather than the concrete claims struct.
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() UserRole
	TokenID() string
	HasRole(role UserRole) bool
	IsAtLeast(min UserRole) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete claim set minted by the token service
type JWTClaims struct {
	jwt.RegisteredClaims
	UID      string   `json:"uid"`
	UserRole UserRole `json:"role"`
}

func (c JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

func (c JWTClaims) UserID() string {
	return c.UID
}

func (c JWTClaims) Role() UserRole {
	return c.UserRole
}

// TokenID returns the jti claim
func (c JWTClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

func (c JWTClaims) HasRole(role UserRole) bool {
	return c.UserRole == role
}

func (c JWTClaims) IsAtLeast(min UserRole) bool {
	return RoleIsAtLeast(c.UserRole, min)
}

func (c JWTClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func (c JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.IssuedAt.Time
}

// ensureTokenID assigns a jti so the token can be revoked later
func ensureTokenID(c *jwt.RegisteredClaims) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
}
