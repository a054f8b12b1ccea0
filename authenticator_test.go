package hobbies_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	hobbies "github.com/goliatone/go-hobbies"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestTokenService() hobbies.TokenService {
	return hobbies.NewTokenService(
		[]byte("test-signing-key"),
		24,
		"test-issuer",
		jwt.ClaimStrings{"test-audience"},
		nil,
	)
}

func TestAuthenticatorLogin(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokenService()

	t.Run("mints a validatable token for verified credentials", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		revoked := &MockRevokedTokens{}

		identity := testIdentity{id: uuid.NewString(), email: "user@example.com", role: "member"}
		provider.On("VerifyIdentity", ctx, "user@example.com", "secret-pass").Return(identity, nil)

		auth := hobbies.NewAuthenticator(provider, tokens, revoked, nil)

		raw, err := auth.Login(ctx, "user@example.com", "secret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, raw)

		claims, err := tokens.Validate(raw)
		assert.NoError(t, err)
		assert.Equal(t, identity.ID(), claims.UserID())
		assert.Equal(t, "member", claims.Role())
		assert.NotEmpty(t, claims.TokenID())

		provider.AssertExpectations(t)
	})

	t.Run("propagates credential failures unchanged", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "user@example.com", "wrong").
			Return(nil, hobbies.ErrInvalidCredentials)

		auth := hobbies.NewAuthenticator(provider, tokens, &MockRevokedTokens{}, nil)

		raw, err := auth.Login(ctx, "user@example.com", "wrong")

		assert.Empty(t, raw)
		assert.ErrorIs(t, err, hobbies.ErrInvalidCredentials)
	})
}

func TestAuthenticatorInvalidate(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokenService()

	mintToken := func(t *testing.T, userID string) (string, hobbies.AuthClaims) {
		raw, err := tokens.Generate(testIdentity{id: userID, role: "member"})
		assert.NoError(t, err)
		claims, err := tokens.Validate(raw)
		assert.NoError(t, err)
		return raw, claims
	}

	t.Run("records the token id on the denylist", func(t *testing.T) {
		userID := uuid.NewString()
		raw, claims := mintToken(t, userID)

		revoked := &MockRevokedTokens{}
		revoked.On("Revoke", ctx, mock.MatchedBy(func(token *hobbies.RevokedToken) bool {
			return token.ID.String() == claims.TokenID() &&
				token.UserID.String() == userID &&
				token.ExpiresAt != nil
		})).Return(nil)

		auth := hobbies.NewAuthenticator(&MockIdentityProvider{}, tokens, revoked, nil)

		err := auth.Invalidate(ctx, raw)

		assert.NoError(t, err)
		revoked.AssertExpectations(t)
	})

	t.Run("unparsable tokens fail as a logout error", func(t *testing.T) {
		auth := hobbies.NewAuthenticator(&MockIdentityProvider{}, tokens, &MockRevokedTokens{}, nil)

		err := auth.Invalidate(ctx, "not.a.token")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Sorry, user cannot be logged out")

		richErr, ok := hobbies.AsRichError(err)
		assert.True(t, ok)
		assert.Equal(t, 500, richErr.Code)
	})

	t.Run("store failures fail as a logout error", func(t *testing.T) {
		raw, _ := mintToken(t, uuid.NewString())

		revoked := &MockRevokedTokens{}
		revoked.On("Revoke", ctx, mock.Anything).Return(assert.AnError)

		auth := hobbies.NewAuthenticator(&MockIdentityProvider{}, tokens, revoked, nil)

		err := auth.Invalidate(ctx, raw)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Sorry, user cannot be logged out")
	})
}

func TestAuthenticatorResolve(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokenService()

	t.Run("rejects revoked tokens", func(t *testing.T) {
		raw, err := tokens.Generate(testIdentity{id: uuid.NewString(), role: "member"})
		assert.NoError(t, err)

		revoked := &MockRevokedTokens{}
		revoked.On("IsRevoked", ctx, mock.Anything).Return(true, nil)

		auth := hobbies.NewAuthenticator(&MockIdentityProvider{}, tokens, revoked, nil)

		user, claims, err := auth.Resolve(ctx, raw)

		assert.Nil(t, user)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, hobbies.ErrTokenRevoked)
	})

	t.Run("rejects expired tokens before the revocation check", func(t *testing.T) {
		revoked := &MockRevokedTokens{}
		auth := hobbies.NewAuthenticator(&MockIdentityProvider{}, tokens, revoked, nil)

		user, claims, err := auth.Resolve(ctx, "not.a.token")

		assert.Nil(t, user)
		assert.Nil(t, claims)
		assert.Error(t, err)
		revoked.AssertNotCalled(t, "IsRevoked", mock.Anything, mock.Anything)
	})
}
