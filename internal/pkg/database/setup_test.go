package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
)

func TestDSNs(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: "3306", User: "shop", Password: "pw", Name: "shop_db"}

	assert.Equal(t, "shop:pw@tcp(db:3306)/shop_db?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN(cfg))

	cfg.Port = "5432"
	assert.Equal(t, "host=db user=shop password=pw dbname=shop_db port=5432 sslmode=disable TimeZone=UTC", PostgresDSN(cfg))
}

func TestDialector(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{Driver: "mysql"})
	assert.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: "postgres"})
	assert.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMigrationURL(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "shop", Password: "pw", Name: "shop_db"}
	u, err := MigrationURL(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "mysql://shop:pw@tcp(db:3306)/shop_db?multiStatements=true", u)

	cfg.Driver = "postgres"
	cfg.Port = "5432"
	u, err = MigrationURL(cfg)
	assert.NoError(t, err)
	assert.Equal(t, "postgres://shop:pw@db:5432/shop_db?sslmode=disable", u)

	_, err = MigrationURL(config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
