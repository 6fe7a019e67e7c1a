// Package redis checks unique and exists rules against Redis.
//
// Each rule table and column maps to one hash, "<prefix><table>:<column>",
// whose fields are the stored values and whose field values are record
// ids. The hash is kept current by the application through Index and
// Remove; PresenceVerifier only reads it:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	idx := redis.NewPresenceVerifier(client, redis.WithKeyPrefix("jsv:"))
//	_ = idx.Index(ctx, "users", "email", "jane@example.com", "42")
//
//	v, err := validator.New(data, rules, validator.WithPresenceVerifier(idx))
//
// unique:users,email,42 then passes for Jane's own record and fails for
// everyone else.
package redis
