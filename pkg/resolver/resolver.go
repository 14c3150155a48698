// Package resolver memoizes expensive computations in an external key-value
// store using the cache-aside pattern.
package resolver

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/zeriontech/cacheaside/pkg/cache"
	"go.uber.org/zap"
)

// TTL is applied to every value written back on a miss.
const TTL = 60 * time.Second

// ComputeFunc produces the value for a missing key.
type ComputeFunc func() (string, error)

type Resolver struct {
	Repo       cache.Repository
	Prometheus *Prometheus
	Logger     *zap.Logger
}

// NewResolver wires a resolver to repo. A nil repo falls back to Redis on
// localhost:6379, database 0; a nil prom disables metrics.
func NewResolver(repo cache.Repository, prom *Prometheus, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		repo = cache.NewDefaultRedisRepository(logger)
	}

	return &Resolver{
		Repo:       repo,
		Prometheus: prom,
		Logger:     logger,
	}
}

// GetOrCompute returns the cached value for key. On a miss it calls compute
// once, writes the result with TTL and returns it.
//
// Errors from the store and from compute are returned unchanged. A failed
// write is reported even though compute already ran; the computed value is
// not returned in that case.
func (resolver *Resolver) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (string, error) {
	resolver.Prometheus.lookup()

	cached, found, err := resolver.Repo.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if found {
		resolver.Prometheus.hit()
		resolver.Logger.Debug("cache hit", zap.String("key", key))
		return decode(cached), nil
	}

	resolver.Prometheus.miss()
	resolver.Logger.Debug("cache miss", zap.String("key", key))

	value, err := compute()
	if err != nil {
		return "", err
	}

	if err := resolver.Repo.SetWithExpiration(ctx, key, TTL, value); err != nil {
		resolver.Prometheus.writeFailure()
		return "", err
	}

	return value, nil
}

// decode converts stored bytes to a value. Stored values are UTF-8 text.
func decode(b []byte) string {
	return string(b)
}

// HashKey derives a fixed-length key from a prefix and the parts identifying
// a computation. Each field is length-prefixed, so no two distinct splits of
// the same text hash alike.
func HashKey(prefix string, parts ...string) string {
	hasher := md5.New()
	for _, field := range append([]string{prefix}, parts...) {
		hasher.Write([]byte(strconv.Itoa(len(field)) + ":" + field))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
