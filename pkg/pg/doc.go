// Package pg bootstraps PostgreSQL access with pgx/v5: connection pooling
// with retries, goose migrations from an fs.FS, a readiness check and error
// classification helpers.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg, log); err != nil {
//		return err
//	}
package pg
