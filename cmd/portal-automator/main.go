package main

import (
	"context"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/cmd"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/engine"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/log"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/otelhelper"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/scheduler"
	"github.com/kafkasder-git/PORTAL-1-sub001/pkg/services"
)

const executionTimeout = 2 * time.Minute

func main() {
	logger := log.WithModule("automator")

	command := &cli.Command{
		Name:                  "portal-automator",
		Usage:                 "Run workflows in response to portal events",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL (postgres://... or a data directory)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (kafka, gochannel)",
				Value:   "kafka",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka broker addresses",
				Value:   "localhost:9092",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "deadline-schedule",
				Usage:   "Cron schedule for the task deadline scan",
				Value:   "@hourly",
				Sources: cli.EnvVars("DEADLINE_SCHEDULE"),
			},
			&cli.IntFlag{
				Name:    "deadline-window-days",
				Usage:   "Days ahead to look for approaching task deadlines",
				Value:   3,
				Sources: cli.EnvVars("DEADLINE_WINDOW_DAYS"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces for workflow executions over OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
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

			logger.InfoContext(ctx, "Initializing Portal Automator")

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				err := persistence.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(
				command.String("event-bus"),
				command.String("kafka-brokers"),
				"portal-automator",
				logger,
			)

			defer func() {
				err := eventBus.Close()
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			registry := cmd.NewRegistry(logger, persistence, nil)

			engineOpts := []engine.Option{engine.WithTimeout(executionTimeout)}

			if command.Bool("tracing") {
				tracer, err := otelhelper.NewTracer(ctx, "portal-automator")
				if err != nil {
					return err
				}

				engineOpts = append(engineOpts, engine.WithTracer(tracer))
			}

			eng := engine.NewEngine(logger, registry, persistence, engineOpts...)
			audit := services.NewAuditService(persistence, logger)
			workflows := services.NewWorkflowService(persistence, registry, eng, audit, logger)
			deadlines := scheduler.NewDeadlineScheduler(logger, persistence.Tasks(), eventBus, command.Int("deadline-window-days"))

			automator := NewAutomator(eventBus, workflows, eng, deadlines, logger)

			return automator.Start(ctx, command.String("deadline-schedule"))
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
