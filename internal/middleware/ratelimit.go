package middleware

import (
	"net/http"
	"time"

	"vn-server/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRateLimitStore выбирает хранилище счётчиков лимитера: Redis, если клиент передан,
// иначе память процесса. Хранилище в памяти не разделяется между репликами сервера.
func NewRateLimitStore(client *redis.Client, rate time.Duration, limit uint) ratelimit.Store {
	if client != nil {
		return ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: client,
			Rate:        rate,
			Limit:       limit,
		})
	}
	return ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  rate,
		Limit: limit,
	})
}

// RateLimit limits mutating gameplay calls per account. Must run after GinAuth.
func RateLimit(store ratelimit.Store, logger *zap.Logger) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("key", rateLimitKey(c)),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: rateLimitKey,
	})
}

// rateLimitKey считает запросы по аккаунту, а без авторизации по IP.
func rateLimitKey(c *gin.Context) string {
	if v, ok := c.Get(models.AccountIDGinKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return "account:" + id.String()
		}
	}
	return "ip:" + c.ClientIP()
}
