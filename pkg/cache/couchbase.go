package cache

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/couchbase/gocb.v1"
)

// bucket is the part of *gocb.Bucket the repository uses.
type bucket interface {
	Get(key string, valuePtr interface{}) (gocb.Cas, error)
	Upsert(key string, value interface{}, expiry uint32) (gocb.Cas, error)
	Close() error
}

type CouchbaseRepository struct {
	bucket bucket
	logger *zap.Logger
}

// cluster is the part of *gocb.Cluster used to open the cache bucket.
type cluster interface {
	Authenticate(auth gocb.Authenticator) error
	OpenBucket(bucket, password string) (*gocb.Bucket, error)
	Close() error
}

func NewCouchbaseRepository(cfg CouchbaseConfig, logger *zap.Logger) (*CouchbaseRepository, error) {
	connected, err := gocb.Connect("couchbase://" + cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("couchbase connect %s: %w", cfg.Host, err)
	}

	cacheBucket, err := openBucket(connected, cfg)
	if err != nil {
		return nil, err
	}

	return newCouchbaseRepository(cacheBucket, logger), nil
}

// openBucket closes c when the bucket cannot be opened.
func openBucket(c cluster, cfg CouchbaseConfig) (*gocb.Bucket, error) {
	err := c.Authenticate(gocb.PasswordAuthenticator{
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("couchbase authenticate: %w", err)
	}

	cacheBucket, err := c.OpenBucket(cfg.BucketName, "")
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("couchbase open bucket %s: %w", cfg.BucketName, err)
	}

	return cacheBucket, nil
}

func newCouchbaseRepository(b bucket, logger *zap.Logger) *CouchbaseRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CouchbaseRepository{bucket: b, logger: logger}
}

// Get ignores ctx; gocb v1 has no per-call context.
func (repository *CouchbaseRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	var value string
	_, err := repository.bucket.Get(key, &value)
	if gocb.IsKeyNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		repository.logger.Debug("couchbase get failed", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}

	return []byte(value), true, nil
}

// SetWithExpiration truncates ttl to whole seconds, the couchbase expiry unit.
func (repository *CouchbaseRepository) SetWithExpiration(_ context.Context, key string, ttl time.Duration, value string) error {
	_, err := repository.bucket.Upsert(key, value, uint32(ttl/time.Second))
	if err != nil {
		repository.logger.Debug("couchbase upsert failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (repository *CouchbaseRepository) Close() error {
	return repository.bucket.Close()
}
