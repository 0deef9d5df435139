package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xcode96/SOC/internal/config"
	"github.com/xcode96/SOC/internal/library"
	"github.com/xcode96/SOC/internal/logger"
	"github.com/xcode96/SOC/internal/store"
	"github.com/xcode96/SOC/internal/styles"
)

// env bundles what a command needs once configuration is loaded
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	lib     *library.Library
	cleanup func()
}

// loadEnv loads config, opens the log and the configured store
func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := logger.ParseLevel(cfg.LogLevel)
	log := logger.NewWithLevel(os.Stderr, level)
	closeLog := func() {}
	if cfg.LogFile != "" {
		fileLog, cleanup, err := logger.NewFileLogger(cfg.LogFile, level)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log, closeLog = fileLog, cleanup
	}

	s, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.ConfigLoaded(cfg.Store, storeLocation(cfg))

	return &env{
		cfg: cfg,
		log: log,
		lib: library.New(s, log),
		cleanup: func() {
			closeStore()
			closeLog()
		},
	}, nil
}

// openStore builds the configured backend, wrapped in a read cache when cache_ttl is set
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	var s store.Store
	closeStore := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		s = store.NewMemoryStore()
	case config.StoreRedis:
		rs, err := store.NewRedisStore(ctx, cfg.RedisURL, "guidemark:")
		if err != nil {
			return nil, nil, err
		}
		s = rs
		closeStore = func() { rs.Close() }
	default:
		s = store.NewFileStore(cfg.StorePath)
	}

	if cfg.CacheTTL > 0 {
		s = store.NewCached(s, cfg.CacheTTL)
	}
	return s, closeStore, nil
}

func storeLocation(cfg *config.Config) string {
	switch cfg.Store {
	case config.StoreRedis:
		return cfg.RedisURL
	case config.StoreMemory:
		return "memory"
	}
	return cfg.StorePath
}

// withEnv runs fn against the configured library and exits on failure
func withEnv(fn func(ctx context.Context, e *env) error) {
	ctx := context.Background()

	e, err := loadEnv(ctx)
	if err != nil {
		fail(err)
	}

	err = fn(ctx, e)
	e.cleanup()
	if err != nil {
		fail(err)
	}
}

// fail prints err in the error style and exits
func fail(err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
	os.Exit(1)
}

// usageError reports a missing argument the way every command does
func usageError(usage string) error {
	return fmt.Errorf("usage: guidemark %s", usage)
}

// readInput reads a file, or standard input when path is "-"
func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// hasFlag reports whether flag appears in args and returns args without it
func hasFlag(args []string, flag string) (bool, []string) {
	found := false
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == flag {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}
