package hobbies

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RevokedTokens is the denylist store consulted on every authenticated request
type RevokedTokens interface {
	Revoke(ctx context.Context, token *RevokedToken) error
	IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type revokedTokens struct {
	db *bun.DB
}

var _ RevokedTokens = (*revokedTokens)(nil)

func NewRevokedTokensRepository(db *bun.DB) RevokedTokens {
	return &revokedTokens{db: db}
}

// Revoke records the token. Revoking the same token twice is a no-op.
func (r *revokedTokens) Revoke(ctx context.Context, token *RevokedToken) error {
	_, err := r.db.NewInsert().
		Model(token).
		On("CONFLICT DO NOTHING").
		Exec(ctx)

	return err
}

func (r *revokedTokens) IsRevoked(ctx context.Context, jti uuid.UUID) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.id = ?", jti).
		Count(ctx)

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// PurgeExpired drops entries for tokens that have expired on their own. They
// no longer need a denylist row to be rejected.
func (r *revokedTokens) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*RevokedToken)(nil)).
		Where("?TableAlias.expires_at IS NOT NULL").
		Where("?TableAlias.expires_at < ?", time.Now()).
		Exec(ctx)

	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}

	return affected, nil
}
