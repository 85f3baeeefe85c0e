// Package main is the cache-vault command line: the entry API server, schema
// migrations and direct save/fetch/delete access to the vault.
package main

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    "cache-vault",
		Usage:   "Encrypted local key-value vault",
		Version: version,
		Commands: slices.Concat(
			getSystemCommands(version),
			getVaultCommands(),
			getKeyCommands(),
		),
	}
}

func main() {
	if err := newRootCommand(version).Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
