package hobbies

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Users interface {
	repository.Repository[*User]

	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackAttemptedLoginTx(ctx context.Context, tx bun.IDB, user *User) error
	TrackSucccessfulLogin(ctx context.Context, user *User) error
	TrackSucccessfulLoginTx(ctx context.Context, tx bun.IDB, user *User) error

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)

	EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	PhoneInUse(ctx context.Context, phone string, exclude uuid.UUID) (bool, error)

	SyncHobbies(ctx context.Context, userID uuid.UUID, hobbyIDs []uuid.UUID, detach bool) error
	ListByHobby(ctx context.Context, hobbyName string) ([]*User, error)
	ListPage(ctx context.Context, page, perPage int) (*Page, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	return a.CreateTx(ctx, tx, user)
}

func (a *users) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error) {
	return a.GetByIdentifierTx(ctx, a.db, identifier, criteria...)
}

func (a *users) GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*User, error) {
	options := resolveUserIdentifier(identifier)
	if len(options) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"identifier": identifier,
			})
	}

	for _, opt := range options {
		record := &User{}
		q := tx.NewSelect().Model(record)

		for _, c := range criteria {
			q.Apply(c)
		}

		err := q.
			Where(fmt.Sprintf("?TableAlias.%s = ?", opt.column), opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	if err := a.prepareUserDefaults(ctx, tx, record); err != nil {
		return nil, err
	}
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

// EmailInUse reports whether a live user other than exclude holds the email.
// Soft deleted rows do not count, their email is free for reuse.
func (a *users) EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	return a.columnInUse(ctx, "email", email, exclude)
}

// PhoneInUse reports whether a live user other than exclude holds the phone
func (a *users) PhoneInUse(ctx context.Context, phone string, exclude uuid.UUID) (bool, error) {
	if phone == "" {
		return false, nil
	}
	return a.columnInUse(ctx, "phone_number", phone, exclude)
}

func (a *users) columnInUse(ctx context.Context, column, value string, exclude uuid.UUID) (bool, error) {
	q := a.db.NewSelect().
		Model((*User)(nil)).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), value)

	if exclude != uuid.Nil {
		q = q.Where("?TableAlias.id != ?", exclude)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// SyncHobbies associates hobbies with the user. The default mode is additive,
// existing associations stay even when absent from hobbyIDs. Pass detach to
// replace the set instead.
func (a *users) SyncHobbies(ctx context.Context, userID uuid.UUID, hobbyIDs []uuid.UUID, detach bool) error {
	return a.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if detach {
			if _, err := tx.NewDelete().
				Model((*UserHobby)(nil)).
				Where("user_id = ?", userID).
				Exec(ctx); err != nil {
				return err
			}
		}

		if len(hobbyIDs) == 0 {
			return nil
		}

		rows := make([]*UserHobby, 0, len(hobbyIDs))
		for _, hobbyID := range hobbyIDs {
			rows = append(rows, &UserHobby{
				UserID:  userID,
				HobbyID: hobbyID,
			})
		}

		_, err := tx.NewInsert().
			Model(&rows).
			On("CONFLICT DO NOTHING").
			Exec(ctx)

		return err
	})
}

// ListByHobby finds the first hobby whose name contains hobbyName, case
// insensitive, and returns its users. No matching hobby means an empty list,
// not an error.
func (a *users) ListByHobby(ctx context.Context, hobbyName string) ([]*User, error) {
	hobby := &Hobby{}

	err := a.db.NewSelect().
		Model(hobby).
		Relation("Users").
		Where("LOWER(?TableAlias.name) LIKE ?", "%"+strings.ToLower(hobbyName)+"%").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return []*User{}, nil
		}
		return nil, err
	}

	if hobby.Users == nil {
		return []*User{}, nil
	}

	return hobby.Users, nil
}

// ListPage returns one page of live users ordered by creation time
func (a *users) ListPage(ctx context.Context, page, perPage int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	records := []*User{}
	total, err := a.db.NewSelect().
		Model(&records).
		Order("usr.created_at ASC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		ScanAndCount(ctx)

	if err != nil {
		return nil, err
	}

	return &Page{
		Items:   records,
		Total:   total,
		PerPage: perPage,
		Current: page,
	}, nil
}

// SoftDelete marks the user deleted. The soft_delete tag on the model turns
// this into an UPDATE setting deleted_at.
func (a *users) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) TrackSucccessfulLogin(ctx context.Context, user *User) error {
	return a.TrackSucccessfulLoginTx(ctx, a.db, user)
}

func (a *users) TrackSucccessfulLoginTx(ctx context.Context, tx bun.IDB, user *User) error {
	// NOTE: Updating using the ORM fails due to a bug, it wont reset
	// login_attempt_at, login_attempts fields.
	loggedInAt := time.Now()
	_, err := tx.NewRaw(`
		UPDATE "users" AS "usr"
		SET
			"loggedin_at" = ?,
			"login_attempt_at" = NULL,
			"login_attempts" = 0
		WHERE
			("usr".id = ?)
			AND "usr"."deleted_at" IS NULL;
	`, loggedInAt, user.ID).Exec(ctx)

	return err
}

func (a *users) TrackAttemptedLogin(ctx context.Context, user *User) error {
	return a.TrackAttemptedLoginTx(ctx, a.db, user)
}

func (a *users) TrackAttemptedLoginTx(ctx context.Context, tx bun.IDB, user *User) error {
	criteria := []repository.UpdateCriteria{
		repository.UpdateByID(user.ID.String()),
	}

	record := &User{}
	record.ID = user.ID
	record.LoginAttempts = user.LoginAttempts + 1
	now := time.Now()
	record.LoginAttemptAt = &now

	_, err := a.Repository.UpdateTx(ctx, tx, record, criteria...)

	return err
}

// prepareUserDefaults backfills role, status, and the primary key. The id is
// derived from the email so registrations are stable, but a soft deleted row
// keeps its id, so a taken derivation falls back to a random one.
func (a *users) prepareUserDefaults(ctx context.Context, tx bun.IDB, record *User) error {
	if record == nil {
		return nil
	}

	if record.Role == "" {
		record.Role = RoleMember
	}

	record.EnsureStatus()

	if record.ID != uuid.Nil {
		return nil
	}

	if id, err := hashid.NewUUID(record.Email); err == nil {
		taken, err := a.idTaken(ctx, tx, id)
		if err != nil {
			return err
		}
		if !taken {
			record.ID = id
			return nil
		}
	}

	record.ID = uuid.New()
	return nil
}

// idTaken checks live and soft deleted rows, the primary key constraint does
// not exclude deleted_at
func (a *users) idTaken(ctx context.Context, tx bun.IDB, id uuid.UUID) (bool, error) {
	count, err := tx.NewSelect().
		Model((*User)(nil)).
		WhereAllWithDeleted().
		Where("?TableAlias.id = ?", id).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type identifierOption struct {
	column string
	value  string
}

func resolveUserIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 2)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "email",
			value:  trimmed,
		})
	}

	return options
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
