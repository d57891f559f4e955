// Package storagedb holds all the migrations for the session storage database
package storagedb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the session storage database
var Migrations = migrate.NewMigrations()
