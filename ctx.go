package hobbies

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// ClaimsFromCtx extracts the AuthClaims stored by the JWT middleware
func ClaimsFromCtx(c *fiber.Ctx, key string) (AuthClaims, bool) {
	if key == "" {
		key = "user" // Default key used by JWT middleware
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// UserFromCtx returns the resolved user stored on the request
func UserFromCtx(c *fiber.Ctx) (*User, bool) {
	raw := c.Locals("auth_user")
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}
