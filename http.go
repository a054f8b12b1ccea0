package hobbies

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-hobbies/middleware/jwtware"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// RouteAuthenticator wires the authenticator into fiber routes
type RouteAuthenticator struct {
	auth   *Authenticator
	cfg    Config
	Logger Logger
}

func NewHTTPAuthenticator(auther *Authenticator, cfg Config) (*RouteAuthenticator, error) {
	return &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}, nil
}

// ProtectedRoute returns the JWT middleware for authenticated routes. Pass a
// role to require at least that rank, admin routes do, and owner outranks
// admin.
func (a *RouteAuthenticator) ProtectedRoute(minimumRole ...UserRole) fiber.Handler {
	role := ""
	if len(minimumRole) > 0 {
		role = minimumRole[0]
	}

	return jwtware.New(jwtware.Config{
		ErrorHandler: a.authErrorHandler,
		SigningKey: jwtware.SigningKey{
			Key:    []byte(a.cfg.GetSigningKey()),
			JWTAlg: a.cfg.GetSigningMethod(),
		},
		AuthScheme:     a.cfg.GetAuthScheme(),
		ContextKey:     a.cfg.GetContextKey(),
		TokenLookup:    a.cfg.GetTokenLookup(),
		TokenValidator: tokenValidatorAdapter{a.auth.tokens},
		Revocations:    revocationAdapter{a.auth.revoked},
		MinimumRole:    role,
		ContextEnricher: func(ctx context.Context, claims jwtware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(ctx, ac)
			}
			return ctx
		},
	})
}

// authErrorHandler turns middleware failures into the uniform error envelope
func (a *RouteAuthenticator) authErrorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error

	switch {
	case errors.Is(err, jwtware.ErrJWTMissingOrMalformed), errors.Is(err, jwtware.ErrTokenRevoked):
		richErr = ErrTokenExpired
	case IsTokenExpiredError(err):
		richErr = ErrTokenExpired
	case errors.As(err, &richErr):
		// keep the structured error as is
	case isRoleCheckError(err):
		richErr = ErrForbidden
	default:
		richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"details", print.MaybePrettyJSON(richErr.Metadata),
		"path", c.OriginalURL(),
	)

	return WriteError(c, richErr)
}

// role check failures come out of the middleware as plain errors
func isRoleCheckError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return len(msg) > len("access denied") && msg[:len("access denied")] == "access denied"
}

type tokenValidatorAdapter struct {
	tokens TokenService
}

func (t tokenValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := t.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

type revocationAdapter struct {
	revoked RevokedTokens
}

func (r revocationAdapter) IsRevoked(ctx context.Context, jti string) (bool, error) {
	id, err := uuid.Parse(jti)
	if err != nil {
		// tokens minted by this service always carry a uuid jti
		return true, nil
	}
	return r.revoked.IsRevoked(ctx, id)
}
