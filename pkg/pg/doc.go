// Package pg checks unique and exists rules against PostgreSQL.
//
// Connect opens a pgx pool from Config (PG_* environment variables) and
// retries until the database answers. PresenceVerifier implements
// validator.PresenceVerifier on top of any Querier, usually the pool:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	v, err := validator.New(data, rules,
//		validator.WithPresenceVerifier(pg.NewPresenceVerifier(pool, pg.WithTables("users", "teams"))),
//	)
//
// Table and column names come from rule strings, so they are quoted as
// identifiers and can be restricted with WithTables. Values are always
// passed as query arguments.
package pg
