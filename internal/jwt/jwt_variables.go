package jwt

import (
	"time"

	"crm-console-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

var (
	STAFF_SECRET string
	RedisClient  *redis.Client
)

const RefreshTokenTTL = 24 * 30 * time.Hour

var RoleSecrets = map[Role]string{
	RoleStaff: STAFF_SECRET,
}

func init() {
	STAFF_SECRET = env.Get(env.StaffSecretKey)
	RoleSecrets[RoleStaff] = STAFF_SECRET

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.AuthRedisURL),
		Password: env.Get(env.AuthRedisPass),
		DB:       0,
	})
}
