package hobbies_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	hobbies "github.com/goliatone/go-hobbies"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// setupTestDB opens an isolated in memory database, runs the migrations, and
// registers the models the way the server does at boot.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel(
		(*hobbies.UserHobby)(nil),
		(*hobbies.User)(nil),
		(*hobbies.Hobby)(nil),
		(*hobbies.RevokedToken)(nil),
	)

	if err := hobbies.RunMigrations(context.Background(), db, hobbies.GetMigrationsFS()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// seedTestHobbies loads the embedded hobby fixtures
func seedTestHobbies(t *testing.T, db *bun.DB) {
	t.Helper()

	if err := hobbies.Seed(context.Background(), db); err != nil {
		t.Fatalf("failed to seed hobbies: %v", err)
	}
}

func newTestUser(email string) *hobbies.User {
	return &hobbies.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "$2a$14$not-a-real-hash",
	}
}
