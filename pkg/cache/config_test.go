package cache

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("RedisConfigFromEnv", func() {

	AfterEach(func() {
		os.Unsetenv("redisAddr")
		os.Unsetenv("redisPassword")
		os.Unsetenv("redisDB")
	})

	It("should default to localhost:6379 database 0", func() {
		cfg, err := RedisConfigFromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(RedisConfig{Addr: "localhost:6379", DB: 0}))
	})

	It("should apply environment overrides", func() {
		os.Setenv("redisAddr", "cache:6380")
		os.Setenv("redisPassword", "secret")
		os.Setenv("redisDB", "3")

		cfg, err := RedisConfigFromEnv()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(RedisConfig{Addr: "cache:6380", Password: "secret", DB: 3}))
	})

	It("should reject a non-numeric database", func() {
		os.Setenv("redisDB", "zero")

		_, err := RedisConfigFromEnv()

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("CouchbaseConfigFromEnv", func() {

	AfterEach(func() {
		os.Unsetenv("couchbaseHost")
		os.Unsetenv("bucketName")
	})

	It("should read host and bucket", func() {
		os.Setenv("couchbaseHost", "cb.local")
		os.Setenv("bucketName", "results")

		cfg := CouchbaseConfigFromEnv()

		Expect(cfg.Host).To(Equal("cb.local"))
		Expect(cfg.BucketName).To(Equal("results"))
	})
})
