package middleware

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/setjustgo/travel-assistant/internal/request"
)

const defaultChatRate = "30-M"

// RateLimit returns middleware backed by ulule/limiter with a Redis store.
// The rate uses limiter's formatted notation, e.g. "30-M" for 30 requests
// per minute. Requests are keyed by user ID when one is on the context,
// falling back to client IP for anonymous traffic.
func RateLimit(redisClient *redis.Client, rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultChatRate
	}
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	store, err := redisstore.NewStore(redisClient)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(store, parsed)
	keyGetter := func(r *http.Request) string {
		if id := request.UserIDFromContext(r); id != "" {
			return id
		}
		return request.ClientIP(r)
	}
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))
	return mw.Handler, nil
}
