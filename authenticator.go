package hobbies

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Authenticator ties the identity provider, the token service, and the
// revocation store together.
type Authenticator struct {
	provider  IdentityProvider
	tokens    TokenService
	revoked   RevokedTokens
	userStore Users
	logger    Logger
}

// NewAuthenticator will create a new Authenticator
func NewAuthenticator(provider IdentityProvider, tokens TokenService, revoked RevokedTokens, userStore Users) *Authenticator {
	return &Authenticator{
		provider:  provider,
		tokens:    tokens,
		revoked:   revoked,
		userStore: userStore,
		logger:    defLogger{},
	}
}

func (a *Authenticator) WithLogger(l Logger) *Authenticator {
	if l != nil {
		a.logger = l
	}
	return a
}

// Login verifies the credentials and mints a new signed token
func (a *Authenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := a.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		return "", err
	}

	token, err := a.tokens.Generate(identity)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate token")
	}

	return token, nil
}

// Invalidate validates the raw token and records its jti on the denylist.
// Any failure along the way surfaces as the logout error.
func (a *Authenticator) Invalidate(ctx context.Context, raw string) error {
	claims, err := a.tokens.Validate(raw)
	if err != nil {
		return errors.Wrap(err, ErrLogoutFailed.Category, ErrLogoutFailed.Message).
			WithTextCode(ErrLogoutFailed.TextCode).
			WithCode(ErrLogoutFailed.Code)
	}

	jti, err := uuid.Parse(claims.TokenID())
	if err != nil {
		return errors.Wrap(err, ErrLogoutFailed.Category, ErrLogoutFailed.Message).
			WithTextCode(ErrLogoutFailed.TextCode).
			WithCode(ErrLogoutFailed.Code)
	}

	userID, _ := uuid.Parse(claims.UserID())

	expires := claims.Expires()
	var expiresAt *time.Time
	if !expires.IsZero() {
		expiresAt = &expires
	}

	if err := a.revoked.Revoke(ctx, &RevokedToken{
		ID:        jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}); err != nil {
		a.logger.Error("failed to record revoked token", "error", err)
		return errors.Wrap(err, ErrLogoutFailed.Category, ErrLogoutFailed.Message).
			WithTextCode(ErrLogoutFailed.TextCode).
			WithCode(ErrLogoutFailed.Code)
	}

	return nil
}

// Resolve validates the raw token, rejects revoked tokens, and loads the
// user the token belongs to.
func (a *Authenticator) Resolve(ctx context.Context, raw string) (*User, AuthClaims, error) {
	claims, err := a.tokens.Validate(raw)
	if err != nil {
		return nil, nil, err
	}

	if jti, err := uuid.Parse(claims.TokenID()); err == nil {
		revoked, err := a.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to check token revocation")
		}
		if revoked {
			return nil, nil, ErrTokenRevoked
		}
	}

	user, err := a.userStore.GetByIdentifier(ctx, claims.UserID())
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil, ErrInvalidUser
		}
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve token user")
	}

	return user, claims, nil
}
