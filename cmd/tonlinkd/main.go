package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/chainsafe/ton-deeplink/pkg/app"
	"github.com/chainsafe/ton-deeplink/pkg/app/api"
	"github.com/chainsafe/ton-deeplink/pkg/auth"
	"github.com/chainsafe/ton-deeplink/pkg/config"
	"github.com/chainsafe/ton-deeplink/pkg/migrations/storagedb"
	"github.com/chainsafe/ton-deeplink/pkg/pgutil"
	mghelper "github.com/chainsafe/ton-deeplink/pkg/pgutil/migrations"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/codec"
	"github.com/chainsafe/ton-deeplink/pkg/tonconnect/wallets"
)

func main() {
	cliApp := &cli.App{
		Name:  "tonlinkd",
		Usage: "TON Connect deep-link bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to configuration file",
				EnvVars: []string{"TONLINK_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Value: cli.NewStringSlice(".env"),
				Usage: "dotenv files loaded before the config is read",
			},
		},
		Before: func(c *cli.Context) error {
			config.LoadEnv(c.StringSlice("env-file")...)
			return nil
		},
		Commands: []*cli.Command{
			commandServe(),
			commandMigrate(),
			commandWallets(),
			commandDecode(),
			commandToken(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func commandServe() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the host API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			var runner app.Runner = api.NewServer(cfg)
			return runner.Run()
		},
	}
}

func commandMigrate() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "manage the postgres session storage schema",
		ArgsUsage: "<init|up|down|status>",
		Action: func(c *cli.Context) error {
			command := c.Args().First()
			if command == "" {
				return cli.ShowSubcommandHelp(c)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			db, err := pgutil.ConnectDB(c.Context, &cfg.Storage.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			migrator := migrate.NewMigrator(db, storagedb.Migrations)
			return mghelper.RunMigrations(c.Context, migrator, logger, command)
		},
	}
}

func commandWallets() *cli.Command {
	return &cli.Command{
		Name:  "wallets",
		Usage: "list supported wallets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "platform", Usage: "ios, android or web"},
		},
		Action: func(c *cli.Context) error {
			defs := wallets.All()
			if p := c.String("platform"); p != "" {
				defs = wallets.FilterByPlatform(tonconnect.Platform(strings.ToLower(p)))
			}
			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tAPP\tUNIVERSAL LINK\tPLATFORMS")
			for _, d := range defs {
				platforms := make([]string, 0, len(d.Platforms))
				for _, p := range d.Platforms {
					platforms = append(platforms, string(p))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.AppName, d.UniversalLink, strings.Join(platforms, ","))
			}
			return w.Flush()
		},
	}
}

func commandDecode() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a wallet callback link",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scheme", Usage: "return scheme; defaults to tonconnect.return_scheme from the config"},
		},
		Action: func(c *cli.Context) error {
			raw := c.Args().First()
			if raw == "" {
				return cli.ShowSubcommandHelp(c)
			}
			scheme := c.String("scheme")
			if scheme == "" {
				cfg, err := loadConfig(c)
				if err != nil {
					return err
				}
				scheme = cfg.TonConnect.ReturnScheme
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(codec.ParseCallbackURL(raw, scheme))
		},
	}
}

func commandToken() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue a bearer token for the host API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Required: true},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			v, err := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
			if err != nil {
				return err
			}
			token, err := v.Issue(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, token)
			return err
		},
	}
}
