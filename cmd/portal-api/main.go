package main

import (
	"context"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cache"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cmd"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/log"
)

const (
	defaultPort    = 9080
	reportCacheTTL = 5 * time.Minute
)

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "portal-api",
		Usage:                 "Create and manage automation workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL (postgres://... or a data directory)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for report caching (optional)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Portal Automation API")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			var reportCache *cache.Cache

			if redisURL := command.String("redis-url"); redisURL != "" {
				var err error

				reportCache, err = cache.NewCache(redisURL, reportCacheTTL)
				if err != nil {
					return err
				}

				defer func() {
					err := reportCache.Close()
					if err != nil {
						logger.ErrorContext(ctx, "Failed to close report cache", "error", err)
					}
				}()
			}

			registry := cmd.NewRegistry(logger, persistence, nil)

			api := NewAPI(logger, persistence, registry, reportCache)

			err := api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
