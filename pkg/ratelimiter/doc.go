// Package ratelimiter provides token bucket rate limiting.
//
// A Bucket holds Capacity tokens per key and adds RefillRate tokens every
// RefillInterval. Each request consumes one token; a request that finds the
// bucket empty is refused with a RetryAfter hint. State lives in a Store;
// MemoryStore keeps it in process and drops buckets that went idle.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
package ratelimiter
