// Package mongo checks unique and exists rules against MongoDB
// collections.
//
//	client, err := mongo.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	db := client.Database(cfg.Database)
//	v, err := validator.New(data, rules,
//		validator.WithPresenceVerifier(mongo.NewPresenceVerifier(mongo.DatabaseCounter{DB: db})),
//	)
//
// The rule table is the collection name. unique:users,email,<id> compares
// the id against "_id" unless another id column is given; hex ids are
// matched as ObjectIDs.
package mongo
