package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cachevault/cmd/app/commands"
	"github.com/allisson/cachevault/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunMigrations(ctx, config.Load())
			},
		},
	}
}
