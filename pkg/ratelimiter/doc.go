// Package ratelimiter throttles remote validation requests with a token
// bucket per key.
//
// Remote checks fire as visitors type, and each one may hit the presence
// store. A Bucket caps them per client:
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP())).
//		Post("/forms/{form}/remote", remoteHandler)
//
// Denied requests get 429 with a Retry-After header and the JSON body
// {"message": "Too Many Attempts."}, which the browser engine shows as the
// field error.
//
// MemoryStore keeps buckets in process. RedisStore shares them between
// instances and updates each bucket atomically with a Lua script.
package ratelimiter
