package cache

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/zeriontech/cacheaside/pkg/cache Repository

// Repository is the external key-value store a resolver reads through.
// Get reports absence with found == false and a nil error; any error means the
// store could not answer.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	SetWithExpiration(ctx context.Context, key string, ttl time.Duration, value string) error
}
