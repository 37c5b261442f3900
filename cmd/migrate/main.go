package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/urfave/cli/v2"

	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
	"github.com/ManuelReschke/ShopFox/internal/pkg/database"
	"github.com/ManuelReschke/ShopFox/internal/pkg/env"
)

func main() {
	app := &cli.App{
		Name:  "migrate",
		Usage: "Apply ShopFox database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "directory containing the SQL migration files (default migrations/<DB_DRIVER>)",
			},
		},
		Before: func(c *cli.Context) error {
			env.SetupEnvFile()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "run all pending migrations",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					err := m.Up()
					if errors.Is(err, migrate.ErrNoChange) {
						log.Println("[migrate] no change: database is up to date")
						return nil
					}
					if err != nil {
						return fmt.Errorf("run migrations: %w", err)
					}
					log.Println("[migrate] migrations applied")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "roll back the last migration",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					if err := m.Steps(-1); err != nil {
						return fmt.Errorf("roll back last migration: %w", err)
					}
					log.Println("[migrate] last migration rolled back")
					return nil
				}),
			},
			{
				Name:      "goto",
				Usage:     "migrate to version N",
				ArgsUsage: "N",
				Action: withMigrate(func(m *migrate.Migrate, c *cli.Context) error {
					if c.NArg() < 1 {
						return cli.Exit("please provide a version number", 1)
					}
					version, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return cli.Exit(fmt.Sprintf("invalid version number: %v", err), 1)
					}

					err = m.Migrate(uint(version))
					if errors.Is(err, migrate.ErrNoChange) {
						log.Printf("[migrate] no change: database is already at version %d", version)
						return nil
					}
					if err != nil {
						return fmt.Errorf("migrate to version %d: %w", version, err)
					}
					log.Printf("[migrate] migrated to version %d", version)
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "show the current migration version",
				Action: withMigrate(func(m *migrate.Migrate, _ *cli.Context) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						log.Println("[migrate] no migrations applied yet")
						return nil
					}
					if err != nil {
						return fmt.Errorf("read migration version: %w", err)
					}
					dirtyStatus := ""
					if dirty {
						dirtyStatus = " (dirty)"
					}
					log.Printf("[migrate] current version: %d%s", version, dirtyStatus)
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withMigrate(fn func(m *migrate.Migrate, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := config.Load()
		dbURL, err := database.MigrationURL(cfg.Database)
		if err != nil {
			return err
		}

		log.Printf("[migrate] connecting to %s database %s@%s:%s/%s",
			cfg.Database.Driver, cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

		path := c.String("path")
		if path == "" {
			path = "migrations/" + cfg.Database.Driver
		}

		m, err := migrate.New("file://"+path, dbURL)
		if err != nil {
			return fmt.Errorf("init migrate: %w", err)
		}
		defer func() {
			if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
				log.Printf("[migrate] close: %v, %v", sourceErr, dbErr)
			}
		}()

		return fn(m, c)
	}
}
