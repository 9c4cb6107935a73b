package config

import (
	"os"
	"strconv"
	"time"
)

const (
	redisAddrEnv      = "REDIS_ADDR"
	redisPasswordEnv  = "REDIS_PASSWORD"
	redisDBEnv        = "REDIS_DB"
	redisTLSEnv       = "REDIS_TLS"
	deliveryTTLEnv    = "DELIVERY_TTL"
	deliveryPrefixEnv = "DELIVERY_KEY_PREFIX"

	defaultRedisAddr = "localhost:6379"
	defaultRedisDB   = 0

	// Must outlive the far window plus its tolerance so an advance reminder
	// is still remembered when the next check runs.
	defaultDeliveryTTL    = 7 * time.Hour
	defaultDeliveryPrefix = "reminder:delivered:"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool

	// DeliveryTTL is how long a sent reminder is remembered.
	DeliveryTTL time.Duration
	KeyPrefix   string
}

func LoadRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		addr = defaultRedisAddr
	}

	password := os.Getenv(redisPasswordEnv)

	db := defaultRedisDB
	if raw := os.Getenv(redisDBEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	useTLS := os.Getenv(redisTLSEnv) == "true"

	ttl := defaultDeliveryTTL
	if raw := os.Getenv(deliveryTTLEnv); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidDeliveryTTL
		}
		ttl = parsed
	}

	return &RedisConfig{
		Addr:        addr,
		Password:    password,
		DB:          db,
		TLS:         useTLS,
		DeliveryTTL: ttl,
		KeyPrefix:   getEnvOrDefault(deliveryPrefixEnv, defaultDeliveryPrefix),
	}, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
