package hobbies

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

//go:embed data/fixtures
var fixturesFS embed.FS

// GetMigrationsFS returns the migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// GetFixturesFS returns the seed fixture files rooted at the fixtures dir
func GetFixturesFS() fs.FS {
	sub, err := fs.Sub(fixturesFS, "data/fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}
