// Package pg connects to PostgreSQL with pgx/v5 and applies goose migrations
// shipped inside the binary.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, vault.Migrations, "migrations", cfg, log); err != nil {
//	    return err
//	}
//
// Connect retries with a linear back-off. Migrate bridges the pool to
// database/sql for goose and routes goose output to the supplied slog-style
// logger. IsNotFoundError classifies pgx.ErrNoRows.
package pg
