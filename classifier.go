package hobbies

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// Classify maps any error to the HTTP status and client message used in the
// error envelope. Internal detail stays in logs, never in responses.
func Classify(err error) (int, string) {
	if err == nil {
		return fiber.StatusInternalServerError, "Internal server error"
	}

	// token expiry can surface as a raw jwt error before it is wrapped
	if errors.Is(err, jwt.ErrTokenExpired) || IsTokenExpiredError(err) {
		return fiber.StatusUnauthorized, "Token has expired."
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			// unmatched routes get the same body as missing records
			return fiber.StatusNotFound, "Record not found."
		case fiber.StatusMethodNotAllowed:
			return fiber.StatusMethodNotAllowed, "Method not allowed"
		default:
			return fiberErr.Code, fiberErr.Message
		}
	}

	if repository.IsRecordNotFound(err) {
		return fiber.StatusNotFound, "Record not found"
	}

	if richErr, ok := AsRichError(err); ok {
		status := richErr.Code
		if status == 0 {
			status = statusForCategory(richErr.Category)
		}
		return status, richErr.Message
	}

	return fiber.StatusInternalServerError, "Internal server error"
}

// statusForCategory is the fallback for structured errors minted without an
// explicit HTTP code
func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryValidation:
		return fiber.StatusUnprocessableEntity
	case goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError renders err as the uniform error envelope. Registered as the
// fiber app error handler so every failure path shares one shape.
func WriteError(c *fiber.Ctx, err error) error {
	status, message := Classify(err)
	return c.Status(status).JSON(NewErrorEnvelope(status, message))
}
