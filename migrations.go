package hobbies

import (
	"context"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dbfixture"
)

// RunMigrations executes the embedded SQL migrations in filename order.
// Statements are idempotent so running them on every boot is safe.
func RunMigrations(ctx context.Context, db *bun.DB, fsys fs.FS) error {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to list migrations")
	}

	sort.Strings(files)

	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to read migration").
				WithMetadata(map[string]any{"file": file})
		}

		for _, stmt := range splitStatements(string(raw)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to run migration").
					WithMetadata(map[string]any{"file": file})
			}
		}
	}

	return nil
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// Seed loads the hobby fixtures. Rows that already exist are left alone.
func Seed(ctx context.Context, db *bun.DB) error {
	fixture := dbfixture.New(db)
	if err := fixture.Load(ctx, GetFixturesFS(), "hobbies.yml"); err != nil {
		if isDuplicateSeed(err) {
			return nil
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to seed hobbies")
	}
	return nil
}

func isDuplicateSeed(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
