package hobbies

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// Structured errors shared across the auth and user flows. Handlers and
// services return these, the classifier turns them into wire responses.
var (
	// ErrInvalidCredentials covers both unknown identifiers and wrong
	// passwords so responses do not leak which accounts exist
	ErrInvalidCredentials = goerrors.New("Invalid Credentials", goerrors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS").
				WithCode(fiber.StatusUnauthorized)

	// ErrAccountInactive is deliberately indistinguishable from bad
	// credentials on the wire
	ErrAccountInactive = goerrors.New("Invalid Credentials", goerrors.CategoryAuth).
				WithTextCode("ACCOUNT_INACTIVE").
				WithCode(fiber.StatusUnauthorized)

	// ErrTokenExpired is returned for expired, malformed, and revoked
	// tokens alike
	ErrTokenExpired = goerrors.New("Token has expired.", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(fiber.StatusUnauthorized)

	// ErrTokenRevoked marks a token found on the logout denylist
	ErrTokenRevoked = goerrors.New("Token has expired.", goerrors.CategoryAuth).
			WithTextCode("TOKEN_REVOKED").
			WithCode(fiber.StatusUnauthorized)

	// ErrInvalidUser means the token verified but its subject no longer
	// resolves to a live user
	ErrInvalidUser = goerrors.New("Invalid User.", goerrors.CategoryBadInput).
			WithTextCode("INVALID_USER").
			WithCode(fiber.StatusBadRequest)

	// ErrForbidden is returned when the caller's role does not allow the
	// operation. The response body carries no message.
	ErrForbidden = goerrors.New("", goerrors.CategoryAuthz).
			WithTextCode("FORBIDDEN").
			WithCode(fiber.StatusForbidden)

	// ErrLogoutFailed wraps any failure while recording a logout
	ErrLogoutFailed = goerrors.New("Sorry, user cannot be logged out", goerrors.CategoryInternal).
			WithTextCode("LOGOUT_FAILED").
			WithCode(fiber.StatusInternalServerError)

	// ErrTooManyLoginAttempts triggers the login cooldown
	ErrTooManyLoginAttempts = goerrors.New("Too many login attempts", goerrors.CategoryRateLimit).
				WithTextCode("TOO_MANY_ATTEMPTS").
				WithCode(fiber.StatusTooManyRequests)

	// ErrResourceNotFound covers requests for a resource kind we do not serve
	ErrResourceNotFound = goerrors.New("Resource does not exist.", goerrors.CategoryNotFound).
				WithTextCode("RESOURCE_NOT_FOUND").
				WithCode(fiber.StatusNotFound)

	// ErrModelNotFound covers lookups of a known resource kind with no record
	ErrModelNotFound = goerrors.New("Record not found", goerrors.CategoryNotFound).
				WithTextCode("MODEL_NOT_FOUND").
				WithCode(fiber.StatusNotFound)

	// ErrInvalidResource historically shipped with a 200 status, it is a
	// failure and maps to 400 here
	ErrInvalidResource = goerrors.New("Invalid Resource Found", goerrors.CategoryBadInput).
				WithTextCode("INVALID_RESOURCE").
				WithCode(fiber.StatusBadRequest)

	// ErrInvalidArgument rejects malformed request input before validation
	ErrInvalidArgument = goerrors.New("Invalid argument", goerrors.CategoryBadInput).
				WithTextCode("INVALID_ARGUMENT").
				WithCode(fiber.StatusBadRequest)

	// ErrNoEmptyString rejects blank secrets before they reach bcrypt
	ErrNoEmptyString = goerrors.New("password cannot be empty", goerrors.CategoryBadInput).
				WithTextCode("EMPTY_PASSWORD").
				WithCode(fiber.StatusBadRequest)
)

// IsTokenExpiredError will check for the expired and revoked token errors
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenRevoked)
}

// AsRichError unwraps err into a structured error when one is in the chain
func AsRichError(err error) (*goerrors.Error, bool) {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr, true
	}
	return nil, false
}
