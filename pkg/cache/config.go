package cache

import (
	"os"
	"strconv"
)

const (
	defaultRedisHost = "localhost"
	defaultRedisPort = "6379"
	defaultRedisDB   = 0
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CouchbaseConfig struct {
	Host       string
	Username   string
	Password   string
	BucketName string
}

// DefaultRedisConfig points at a local Redis on the default port and database.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: defaultRedisHost + ":" + defaultRedisPort,
		DB:   defaultRedisDB,
	}
}

// RedisConfigFromEnv starts from DefaultRedisConfig and applies redisAddr,
// redisPassword and redisDB when they are set.
func RedisConfigFromEnv() (RedisConfig, error) {
	cfg := DefaultRedisConfig()

	if addr := os.Getenv("redisAddr"); addr != "" {
		cfg.Addr = addr
	}
	cfg.Password = os.Getenv("redisPassword")

	if db := os.Getenv("redisDB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return RedisConfig{}, err
		}
		cfg.DB = n
	}

	return cfg, nil
}

func CouchbaseConfigFromEnv() CouchbaseConfig {
	return CouchbaseConfig{
		Host:       os.Getenv("couchbaseHost"),
		Username:   os.Getenv("couchbaseUsername"),
		Password:   os.Getenv("couchbasePassword"),
		BucketName: os.Getenv("bucketName"),
	}
}
