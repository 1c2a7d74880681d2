package main

import (
	"context"
	"os"

	"github.com/dukex/flowalert/pkg/cmd"
	"github.com/dukex/flowalert/pkg/log"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	cmd := &cli.Command{
		Name:                  "flowalert-api",
		Usage:                 "Preview flow alerts over HTTP",
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
				Name:     "plugins-path",
				Usage:    "Path to the directory containing composer plugins",
				Value:    "./plugins",
				Required: false,
				Sources:  cli.EnvVars("PLUGINS_PATH"),
			},
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

			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing flowalert API")

			opts, err := cmd.ComposerOptions(command.String("server-name"), command.String("server-url"))
			if err != nil {
				return err
			}

			registry, err := cmd.NewRegistry(ctx, logger, command.String("plugins-path"), opts...)
			if err != nil {
				return err
			}

			return NewAPI(logger, registry).Start(command.Int("port"))
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
