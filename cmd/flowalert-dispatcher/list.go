package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dukex/flowalert/pkg/cmd"
	"github.com/dukex/flowalert/pkg/registry"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "List the composers available to the dispatcher",
		Flags: []cli.Flag{
			pluginsPathFlag(),
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := slog.With(
				"module", "flowalert-dispatcher",
				"action", "list",
			)

			reg, err := cmd.NewRegistry(ctx, logger, command.String("plugins-path"))
			if err != nil {
				return err
			}

			writeComposers(os.Stdout, reg)

			return nil
		},
	}
}

func writeComposers(w io.Writer, reg *registry.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Composer", "Source"})

	for _, name := range reg.Names() {
		source := "plugin"
		if name == registry.DefaultName {
			source = "built-in"
		}

		t.AppendRow(table.Row{name, source})
	}

	t.Render()
}
