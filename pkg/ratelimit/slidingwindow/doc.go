/*
Package slidingwindow provides distributed sliding window rate limiting over
a shared, time-indexed store.

The limiter counts admissions within a continuously moving window ending at
"now" rather than fixed calendar buckets. All window state lives in the Store,
keyed and TTL'd there, so any number of limiter instances can share state
through the same backing store.

Two Store implementations ship with the package: an in-memory store for tests
and single-process use, and a Redis store using one sorted set per key.

	store := slidingwindow.NewRedisStore(redisClient)
	limiter, err := slidingwindow.New(store, 100, time.Minute)
	if err != nil {
		// invalid configuration
	}

	if d := limiter.Check(ctx, clientID); d.Allowed {
		// proceed; d.Remaining units left in the window
	}

If the backing store fails, Check fails open: the request is admitted with
full remaining quota and the failure is reported through the configured
logger, the OnFailOpen hook, and (for metrics-enabled limiters) the
fail-open counter. Availability of the protected service takes priority over
strict quota enforcement; see Config.OnFailOpen to observe or override this.
*/
package slidingwindow
