package hobbies_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	hobbies "github.com/goliatone/go-hobbies"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unmatched route",
			err:        fiber.ErrNotFound,
			wantStatus: 404,
			wantMsg:    "Record not found.",
		},
		{
			name:       "method not allowed",
			err:        fiber.ErrMethodNotAllowed,
			wantStatus: 405,
			wantMsg:    "Method not allowed",
		},
		{
			name:       "missing record",
			err:        repository.NewRecordNotFound(),
			wantStatus: 404,
			wantMsg:    "Record not found",
		},
		{
			name:       "invalid credentials",
			err:        hobbies.ErrInvalidCredentials,
			wantStatus: 401,
			wantMsg:    "Invalid Credentials",
		},
		{
			name:       "expired token",
			err:        hobbies.ErrTokenExpired,
			wantStatus: 401,
			wantMsg:    "Token has expired.",
		},
		{
			name:       "revoked token reads as expired",
			err:        hobbies.ErrTokenRevoked,
			wantStatus: 401,
			wantMsg:    "Token has expired.",
		},
		{
			name:       "raw jwt expiry",
			err:        fmt.Errorf("token is invalid: %w", jwt.ErrTokenExpired),
			wantStatus: 401,
			wantMsg:    "Token has expired.",
		},
		{
			name:       "invalid user",
			err:        hobbies.ErrInvalidUser,
			wantStatus: 400,
			wantMsg:    "Invalid User.",
		},
		{
			name:       "forbidden has empty message",
			err:        hobbies.ErrForbidden,
			wantStatus: 403,
			wantMsg:    "",
		},
		{
			name:       "logout failure",
			err:        hobbies.ErrLogoutFailed,
			wantStatus: 500,
			wantMsg:    "Sorry, user cannot be logged out",
		},
		{
			name:       "too many attempts",
			err:        hobbies.ErrTooManyLoginAttempts,
			wantStatus: 429,
			wantMsg:    "Too many login attempts",
		},
		{
			name:       "plain error hides detail",
			err:        errors.New("pq: connection refused"),
			wantStatus: 500,
			wantMsg:    "Internal server error",
		},
		{
			name:       "nil error",
			err:        nil,
			wantStatus: 500,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := hobbies.Classify(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}

	t.Run("category fallback when no explicit code", func(t *testing.T) {
		err := goerrors.New("record state conflict", goerrors.CategoryConflict)

		status, msg := hobbies.Classify(err)

		assert.Equal(t, 409, status)
		assert.Equal(t, "record state conflict", msg)
	})

	t.Run("wrapped structured errors keep their mapping", func(t *testing.T) {
		err := goerrors.Wrap(errors.New("session lookup failed"), goerrors.CategoryInternal, "Sorry, user cannot be logged out").
			WithCode(500)

		status, msg := hobbies.Classify(err)

		assert.Equal(t, 500, status)
		assert.Equal(t, "Sorry, user cannot be logged out", msg)
	})
}
