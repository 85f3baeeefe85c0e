package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cachevault/cmd/app/commands"
	"github.com/allisson/cachevault/internal/app"
	"github.com/allisson/cachevault/internal/config"
)

// entryFlags returns the flags locating one entry, followed by extra.
func entryFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "namespace",
			Aliases: []string{"n"},
			Value:   "default",
			Usage:   "Namespace holding the entry",
		},
		&cli.StringFlag{
			Name:     "key",
			Aliases:  []string{"k"},
			Required: true,
			Usage:    "Entry key name",
		},
	}
	return append(flags, extra...)
}

// formatFlag selects between human-readable output and JSON for scripting.
func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// getVaultCommands returns the entry commands. Each one opens the configured
// database (migrating it when needed) and resolves key material lazily, so the first
// save on a fresh machine also creates the encryption key and pepper.
//
// Examples:
//
//	cache-vault save -n prod -k db-password -v s3cret -a owner=ops -a env=prod
//	echo -n s3cret | cache-vault save -k db-password
//	cache-vault fetch -n prod -k db-password --attributes --format json
//	cache-vault delete -n prod -k db-password
func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "save",
			Usage: "Encrypt and store an entry (value is read from stdin when --value is omitted)",
			Flags: entryFlags(
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Plaintext value",
				},
				&cli.StringSliceFlag{
					Name:    "attribute",
					Aliases: []string{"a"},
					Usage:   "Attribute as name=value (repeatable)",
				},
				&cli.StringFlag{
					Name:    "expired-at",
					Aliases: []string{"e"},
					Usage:   "Expiry as an RFC 3339 timestamp",
				},
				formatFlag(),
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := app.Open(ctx, config.Load())
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunSave(ctx, vaultUseCase, container.Logger(), commands.DefaultIO(), commands.SaveOptions{
					Namespace:  cmd.String("namespace"),
					KeyName:    cmd.String("key"),
					Value:      cmd.String("value"),
					Attributes: cmd.StringSlice("attribute"),
					ExpiredAt:  cmd.String("expired-at"),
					Format:     cmd.String("format"),
				})
			},
		},
		{
			Name:  "fetch",
			Usage: "Decrypt and print an entry",
			Flags: entryFlags(
				&cli.BoolFlag{
					Name:  "attributes",
					Value: false,
					Usage: "Include every attribute of the entry",
				},
				formatFlag(),
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := app.Open(ctx, config.Load())
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunFetch(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("namespace"),
					cmd.String("key"),
					cmd.Bool("attributes"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "delete",
			Usage: "Delete an entry and its attributes",
			Flags: entryFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := app.Open(ctx, config.Load())
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunDelete(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("namespace"),
					cmd.String("key"),
				)
			},
		},
	}
}

// getKeyCommands returns the key material commands. delete-key does not open the
// database: it only talks to the credential store.
func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "delete-key",
			Usage: "Delete key material from the credential store (stored values become unreadable)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "purpose",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Key purpose to delete (the encryption key or pepper purpose)",
				},
				&cli.BoolFlag{
					Name:  "force",
					Value: false,
					Usage: "Skip the interactive confirmation",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}

				// No app.Open: an unreachable database must not block key removal.
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				provider, err := container.KeyProvider()
				if err != nil {
					return err
				}

				return commands.RunDeleteKey(
					ctx,
					provider,
					cfg.KeyringIdentity(),
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("purpose"),
					cmd.Bool("force"),
				)
			},
		},
	}
}
