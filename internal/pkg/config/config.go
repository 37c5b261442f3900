// Package config assembles the process configuration once at startup.
// Components receive the values they need through their constructors.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ManuelReschke/ShopFox/internal/pkg/env"
)

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
}

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type Config struct {
	AppEnv       string
	AppHost      string
	AppPort      string
	PublicDomain string

	Database DatabaseConfig
	Cache    CacheConfig
	Stripe   StripeConfig
	Checkout CheckoutConfig

	HCaptchaSiteKey string
	HCaptchaSecret  string

	MetricsUser     string
	MetricsPassword string
}

// Load reads the configuration from the loaded .env map and the process environment.
func Load() Config {
	domain := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://127.0.0.1:4000"), "/")

	cfg := Config{
		AppEnv:       env.GetEnv("APP_ENV", "prod"),
		AppHost:      env.GetEnv("APP_HOST", "localhost"),
		AppPort:      env.GetEnv("APP_PORT", "4000"),
		PublicDomain: domain,
		Database: DatabaseConfig{
			Driver:   strings.ToLower(env.GetEnv("DB_DRIVER", "mysql")),
			Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
			Port:     env.GetEnv("DB_PORT", ""),
			User:     env.GetEnv("DB_USER", "shopfox"),
			Password: env.GetEnv("DB_PASSWORD", ""),
			Name:     env.GetEnv("DB_NAME", "shopfox_db"),
		},
		Cache: CacheConfig{
			Host:     env.GetEnv("CACHE_HOST", "localhost"),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		Stripe: StripeConfig{
			SecretKey:      strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
			PublishableKey: strings.TrimSpace(env.GetEnv("STRIPE_PUBLISHABLE_KEY", "")),
			WebhookSecret:  strings.TrimSpace(env.GetEnv("STRIPE_WEBHOOK_SECRET", "")),
		},
		Checkout: CheckoutConfig{
			Currency:   strings.ToLower(env.GetEnv("CHECKOUT_CURRENCY", "usd")),
			SuccessURL: env.GetEnv("CHECKOUT_SUCCESS_URL", domain+"/success"),
			CancelURL:  env.GetEnv("CHECKOUT_CANCEL_URL", domain+"/"),
		},
		HCaptchaSiteKey: env.GetEnv("HCAPTCHA_SITEKEY", ""),
		HCaptchaSecret:  env.GetEnv("HCAPTCHA_SECRET", ""),
		MetricsUser:     env.GetEnv("METRICS_USER", ""),
		MetricsPassword: env.GetEnv("METRICS_PASSWORD", ""),
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	log.Printf("[config] APP_ENV=%s listen=%s:%s db=%s@%s:%s",
		cfg.AppEnv, cfg.AppHost, cfg.AppPort, cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port)
	if cfg.Stripe.WebhookSecret == "" {
		log.Printf("[config] STRIPE_WEBHOOK_SECRET is empty, every webhook will be rejected")
	}
	return cfg
}

// Validate reports every required key that is missing or malformed.
func (c Config) Validate() error {
	var errs []error
	if c.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY is required"))
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver))
	}
	if c.Checkout.SuccessURL == "" || c.Checkout.CancelURL == "" {
		errs = append(errs, errors.New("checkout success and cancel URLs are required"))
	}
	return errors.Join(errs...)
}

func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) MetricsEnabled() bool {
	return c.MetricsUser != "" && c.MetricsPassword != ""
}

func (c Config) HCaptchaEnabled() bool {
	return c.HCaptchaSecret != ""
}

func defaultPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}
