package pgstorage

import "embed"

// Migrations holds the goose migrations for the users table. Apply them
// with pg.Migrate(ctx, pool, pgstorage.Migrations, pgstorage.MigrationsDir, cfg, log).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
