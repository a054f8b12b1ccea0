package hobbies

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Hobbies interface {
	repository.Repository[*Hobby]

	FindByNameLike(ctx context.Context, name string) (*Hobby, error)
	FilterExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type hobbiesRepo struct {
	repository.Repository[*Hobby]
	db *bun.DB
}

var _ Hobbies = (*hobbiesRepo)(nil)

func NewHobbiesRepository(db *bun.DB) Hobbies {
	repo := repository.NewRepository[*Hobby](db, repository.ModelHandlers[*Hobby]{
		NewRecord: func() *Hobby { return &Hobby{} },
		GetID: func(h *Hobby) uuid.UUID {
			if h == nil {
				return uuid.Nil
			}
			return h.ID
		},
		SetID: func(h *Hobby, id uuid.UUID) {
			if h != nil {
				h.ID = id
			}
		},
	})

	return &hobbiesRepo{
		Repository: repo,
		db:         db,
	}
}

// FindByNameLike returns the first hobby whose name contains name, case
// insensitive
func (r *hobbiesRepo) FindByNameLike(ctx context.Context, name string) (*Hobby, error) {
	record := &Hobby{}

	err := r.db.NewSelect().
		Model(record).
		Where("LOWER(?TableAlias.name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, err
	}

	return record, nil
}

// FilterExistingIDs returns the subset of ids that resolve to stored hobbies,
// preserving input order
func (r *hobbiesRepo) FilterExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found := []uuid.UUID{}
	err := r.db.NewSelect().
		Model((*Hobby)(nil)).
		Column("id").
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Scan(ctx, &found)

	if err != nil {
		return nil, err
	}

	known := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		known[id] = true
	}

	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}

	return out, nil
}
