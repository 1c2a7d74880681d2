package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukex/flowalert/pkg/cmd"
	"github.com/dukex/flowalert/pkg/dispatcher"
	"github.com/dukex/flowalert/pkg/log"
	"github.com/dukex/flowalert/pkg/otelhelper"
	"github.com/dukex/flowalert/pkg/services"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "flowalert-dispatcher",
		Usage:                 "Compose alerts for flow events and publish them for delivery",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			NewListCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dispatcher-id",
				Aliases: []string{"id"},
				Usage:   "Custom dispatcher ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("DISPATCHER_ID"),
			},
			&cli.StringFlag{
				Name:     "event-bus",
				Usage:    "Event bus type (kafka, gochannel)",
				Required: true,
				Sources:  cli.EnvVars("EVENT_BUS_TYPE"),
			},
			pluginsPathFlag(),
			&cli.StringFlag{
				Name:    "server-name",
				Usage:   "Installation name appended to alert subjects",
				Sources: cli.EnvVars("SERVER_NAME"),
			},
			&cli.StringFlag{
				Name:    "server-url",
				Usage:   "Base URL of the web UI used for execution links",
				Sources: cli.EnvVars("SERVER_URL"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export OpenTelemetry traces over OTLP/HTTP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), command.String("log-format"))

			if command.Bool("tracing") {
				tracerProvider, err := otelhelper.NewTracerProvider(ctx, "flowalert-dispatcher")
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}

				defer func() {
					if err := tracerProvider.Shutdown(context.WithoutCancel(ctx)); err != nil {
						slog.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			dispatcherID := command.String("dispatcher-id")
			if dispatcherID == "" {
				dispatcherID = fmt.Sprintf("dispatcher-%s", uuid.New().String()[:8])
			}

			logger := log.WithModule("flowalert-dispatcher")

			logger.InfoContext(ctx, "Initializing flowalert dispatcher", "dispatcher_id", dispatcherID)

			opts, err := cmd.ComposerOptions(command.String("server-name"), command.String("server-url"))
			if err != nil {
				return err
			}

			registry, err := cmd.NewRegistry(ctx, logger, command.String("plugins-path"), opts...)
			if err != nil {
				return err
			}

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), "flowalert-dispatcher", logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = dispatcher.New(
				dispatcherID,
				eventBus,
				services.NewAlerts(registry, nil),
				logger,
				nil,
			).Start(ctx)
			if err != nil {
				return err
			}

			<-ctx.Done()
			logger.InfoContext(ctx, "Shutting down dispatcher...")

			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func pluginsPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "plugins-path",
		Usage:    "Path to the directory containing composer plugins",
		Value:    "./plugins",
		Required: false,
		Sources:  cli.EnvVars("PLUGINS_PATH"),
	}
}
