package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsvg/internal/server"
	"github.com/matzehuels/graphsvg/pkg/cache"
	"github.com/matzehuels/graphsvg/pkg/pipeline"
)

const (
	defaultAddr = ":8080"

	// redisKeyPrefix scopes graphsvg keys in a shared Redis.
	redisKeyPrefix = appName + ":"
)

type serveFlags struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	noCache       bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz          liveness probe
  POST /api/v1/render    {"graph": ..., "options": ...} -> artifact (?format=svg|png|pdf|html|dot|json)
  POST /api/v1/plan      {"graph": ..., "options": ...} -> layout JSON

Rendered artifacts are cached in the local cache directory, or in Redis
with --redis-addr so that several instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&flags.redisAddr, "redis-addr", "", "Redis host:port or redis:// URL for a shared cache")
	cmd.Flags().StringVar(&flags.redisPassword, "redis-password", os.Getenv("GRAPHSVG_REDIS_PASSWORD"), "Redis password (env GRAPHSVG_REDIS_PASSWORD)")
	cmd.Flags().IntVar(&flags.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	runner, backend, err := c.serveRunner(ctx, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	printInfo("Serving on %s", flags.addr)
	printKeyValue("cache", backend)
	return server.New(runner, c.Logger).ListenAndServe(ctx, flags.addr)
}

// serveRunner builds the server's runner and names its cache backend.
func (c *CLI) serveRunner(ctx context.Context, flags serveFlags) (*pipeline.Runner, string, error) {
	if flags.noCache || flags.redisAddr == "" {
		runner := c.newRunner(flags.noCache)
		if fc, ok := runner.Cache.(*cache.FileCache); ok {
			return runner, fc.Dir(), nil
		}
		return runner, "disabled", nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
		Addr:     flags.redisAddr,
		Password: flags.redisPassword,
		DB:       flags.redisDB,
	})
	if err != nil {
		return nil, "", fmt.Errorf("connect to redis: %w", err)
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix)
	return pipeline.NewRunner(rc, keyer, c.Logger), "redis " + flags.redisAddr, nil
}
