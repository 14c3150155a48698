package cache

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RedisRepository", func() {

	var server *miniredis.Miniredis
	var repository *RedisRepository
	var ctx context.Context

	BeforeEach(func() {
		var err error
		server, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())

		repository = NewRedisRepository(redis.NewClient(&redis.Options{Addr: server.Addr()}), nil)
		ctx = context.Background()
	})

	AfterEach(func() {
		_ = repository.Close()
		server.Close()
	})

	It("should report a missing key as absent", func() {
		value, found, err := repository.Get(ctx, "missing")

		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(value).To(BeNil())
	})

	It("should return stored bytes", func() {
		Expect(server.Set("test-key", "cached-value")).To(Succeed())

		value, found, err := repository.Get(ctx, "test-key")

		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal([]byte("cached-value")))
	})

	It("should write value with expiration", func() {
		Expect(repository.SetWithExpiration(ctx, "key-123", 60*time.Second, "computed-value")).To(Succeed())

		stored, err := server.Get("key-123")
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).To(Equal("computed-value"))
		Expect(server.TTL("key-123")).To(Equal(60 * time.Second))

		server.FastForward(61 * time.Second)
		_, found, err := repository.Get(ctx, "key-123")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("should round trip non-ascii text", func() {
		Expect(repository.SetWithExpiration(ctx, "unicode", time.Minute, "Emre Savcı ✓")).To(Succeed())

		value, found, err := repository.Get(ctx, "unicode")

		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(string(value)).To(Equal("Emre Savcı ✓"))
	})

	It("should return store errors", func() {
		server.SetError("ERR store unavailable")

		_, found, err := repository.Get(ctx, "key")
		Expect(err).To(MatchError(ContainSubstring("store unavailable")))
		Expect(found).To(BeFalse())

		err = repository.SetWithExpiration(ctx, "key", time.Minute, "v")
		Expect(err).To(MatchError(ContainSubstring("store unavailable")))
	})

	It("should fail to build from config when redis is unreachable", func() {
		addr := server.Addr()
		server.Close()

		_, err := NewRedisRepositoryFromConfig(RedisConfig{Addr: addr}, nil)

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("redis ping"))
	})

	It("should build from config when redis answers", func() {
		fromConfig, err := NewRedisRepositoryFromConfig(RedisConfig{Addr: server.Addr()}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(fromConfig.Close()).To(Succeed())
	})
})

var _ = Describe("NewDefaultRedisRepository", func() {

	It("should point at the local default endpoint", func() {
		repository := NewDefaultRedisRepository(nil)

		Expect(repository.Options().Addr).To(Equal("localhost:6379"))
		Expect(repository.Options().DB).To(Equal(0))
		Expect(repository.Close()).To(Succeed())
	})
})
