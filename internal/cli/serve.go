package cli

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/internal/server"
	"github.com/matzehuels/panes/pkg/cache"
	"github.com/matzehuels/panes/pkg/pipeline"
	"github.com/matzehuels/panes/pkg/store"
)

// cleanupInterval is how often expired layouts are swept from the store.
const cleanupInterval = 10 * time.Minute

type serveFlags struct {
	addr     string
	redisURL string
	mongoURI string
	mongoDB  string
	storeDir string
	ttl      time.Duration
}

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Layouts and rendered artifacts are cached in Redis when --redis-url is set
(or PANES_REDIS_URL), otherwise they are not cached. Stored layouts live in
MongoDB when --mongo-uri is set (or PANES_MONGO_URI), as JSON files when
--store-dir is set, and otherwise in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cc, err := openServeCache(ctx, flags.redisURL, logger)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, nil, logger)
			defer runner.Close()

			st, err := openStore(ctx, flags, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			go sweep(ctx, st, logger)

			srv := server.New(runner, st, logger, server.Config{
				Addr: flags.addr,
				TTL:  flags.ttl,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", envOr("PANES_ADDR", server.DefaultAddr), "listen address")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", os.Getenv("PANES_REDIS_URL"), "Redis URL for the layout cache")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", os.Getenv("PANES_MONGO_URI"), "MongoDB URI for stored layouts")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", store.DefaultMongoDatabase, "MongoDB database")
	cmd.Flags().StringVar(&flags.storeDir, "store-dir", "", "directory for stored layouts when MongoDB is not used")
	cmd.Flags().DurationVar(&flags.ttl, "ttl", store.DefaultTTL, "how long stored layouts are kept")
	return cmd
}

func openServeCache(ctx context.Context, url string, logger *log.Logger) (cache.Cache, error) {
	var cc cache.Cache = cache.NewNullCache()
	if url != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: url, Prefix: appName + ":"})
		if err != nil {
			return nil, err
		}
		cc = rc
	}
	logger.Info("cache", "backend", cc.Backend())
	return cc, nil
}

func openStore(ctx context.Context, flags serveFlags, logger *log.Logger) (store.Store, error) {
	switch {
	case flags.mongoURI != "":
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: flags.mongoURI, Database: flags.mongoDB})
		if err != nil {
			return nil, err
		}
		logger.Info("store", "backend", "mongo", "database", flags.mongoDB)
		return ms, nil
	case flags.storeDir != "":
		fs, err := store.NewFileStore(flags.storeDir)
		if err != nil {
			return nil, err
		}
		logger.Info("store", "backend", "file", "dir", flags.storeDir)
		return fs, nil
	default:
		logger.Info("store", "backend", "memory")
		return store.NewMemoryStore(), nil
	}
}

// sweep removes expired layouts until ctx is cancelled.
func sweep(ctx context.Context, st store.Store, logger *log.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := st.Cleanup(ctx); err != nil {
				logger.Warn("store cleanup failed", "err", err)
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
