package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zeriontech/cacheaside/pkg/cache"
	"github.com/zeriontech/cacheaside/pkg/resolver"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, logger))
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		config.Level.SetLevel(level)
	}
	return config.Build()
}

// run memoizes the stdout of a command: cacheaside [-key K] [-prefix P] -- cmd args...
func run(ctx context.Context, args []string, stdout io.Writer, logger *zap.Logger) int {
	flags := flag.NewFlagSet("cacheaside", flag.ContinueOnError)
	key := flags.String("key", "", "cache key, derived from the command when empty")
	prefix := flags.String("prefix", os.Getenv("CACHE_KEY_PREFIX"), "prefix mixed into derived keys")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	command := flags.Args()
	if len(command) == 0 {
		logger.Error("no command given")
		return 2
	}

	if *key == "" {
		*key = resolver.HashKey(*prefix, command...)
	}

	repo, closer, err := newRepository(logger)
	if err != nil {
		logger.Error("Error occurred on repository setup", zap.Error(err))
		return 1
	}
	defer closer()

	cacheResolver := resolver.NewResolver(repo, nil, logger)
	logger.Debug("resolving", zap.String("key", *key), zap.Strings("command", command))

	value, err := cacheResolver.GetOrCompute(ctx, *key, func() (string, error) {
		return runCommand(ctx, command)
	})
	if err != nil {
		logger.Error("get or compute failed", zap.String("key", *key), zap.Error(err))
		return 1
	}

	if _, err := io.WriteString(stdout, value); err != nil {
		logger.Error("IO error", zap.Error(err))
		return 1
	}
	return 0
}

// runCommand returns the command's stdout; a failing command's stderr is
// carried in the error.
func runCommand(ctx context.Context, command []string) (string, error) {
	out, err := exec.CommandContext(ctx, command[0], command[1:]...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("run %s: %w: %s", command[0], err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("run %s: %w", command[0], err)
	}
	return string(out), nil
}

func newRepository(logger *zap.Logger) (cache.Repository, func(), error) {
	if os.Getenv("CACHE_STORE") == "couchbase" {
		repo, err := cache.NewCouchbaseRepository(cache.CouchbaseConfigFromEnv(), logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}

	cfg, err := cache.RedisConfigFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("redis config: %w", err)
	}
	repo, err := cache.NewRedisRepositoryFromConfig(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}
