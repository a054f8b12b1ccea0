package hobbies_test

import (
	"context"
	"testing"
	"time"

	hobbies "github.com/goliatone/go-hobbies"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRevokedTokens(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := hobbies.NewRevokedTokensRepository(db)

	t.Run("revoked token is reported revoked", func(t *testing.T) {
		jti := uuid.New()
		expires := time.Now().Add(24 * time.Hour)

		err := repo.Revoke(ctx, &hobbies.RevokedToken{
			ID:        jti,
			UserID:    uuid.New(),
			ExpiresAt: &expires,
		})
		assert.NoError(t, err)

		revoked, err := repo.IsRevoked(ctx, jti)
		assert.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, uuid.New())

		assert.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoking twice is a no-op", func(t *testing.T) {
		jti := uuid.New()
		token := &hobbies.RevokedToken{ID: jti, UserID: uuid.New()}

		assert.NoError(t, repo.Revoke(ctx, token))
		assert.NoError(t, repo.Revoke(ctx, &hobbies.RevokedToken{ID: jti, UserID: token.UserID}))

		revoked, err := repo.IsRevoked(ctx, jti)
		assert.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("purge drops only expired entries", func(t *testing.T) {
		past := time.Now().Add(-1 * time.Hour)
		future := time.Now().Add(1 * time.Hour)

		stale := uuid.New()
		live := uuid.New()

		assert.NoError(t, repo.Revoke(ctx, &hobbies.RevokedToken{ID: stale, ExpiresAt: &past}))
		assert.NoError(t, repo.Revoke(ctx, &hobbies.RevokedToken{ID: live, ExpiresAt: &future}))

		purged, err := repo.PurgeExpired(ctx)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, purged, int64(1))

		revoked, err := repo.IsRevoked(ctx, stale)
		assert.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = repo.IsRevoked(ctx, live)
		assert.NoError(t, err)
		assert.True(t, revoked)
	})
}
