package database

import (
	"fmt"
	"net/url"

	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
)

// MigrationURL builds the golang-migrate database URL for the configured driver.
func MigrationURL(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case "mysql":
		return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     cfg.Host + ":" + cfg.Port,
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
