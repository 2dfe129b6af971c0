package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limiterstdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

type RateLimitConfig struct {
	// RequestsPerPeriod requests are allowed per Period (default 1s).
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
}

// NewMemoryStore keeps counters in process memory. Counters reset on restart
// and are not shared between instances.
func NewMemoryStore() limiter.Store {
	return limitermemory.NewStore()
}

// NewRedisStore shares counters across instances. Accepts either a redis://
// URL or a bare host:port.
func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		opts = &goredis.Options{Addr: redisURL}
	}
	client := goredis.NewClient(opts)
	return limiterredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "rate_limit",
	})
}

func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}
	instance := limiter.New(store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})
	mw := limiterstdlib.NewMiddleware(instance)
	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}
}
