// Package migrations registers the bun schema migrations for the quiz play
// service.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
