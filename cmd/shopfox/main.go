package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/ShopFox/app/controllers"
	"github.com/ManuelReschke/ShopFox/app/repository"
	"github.com/ManuelReschke/ShopFox/internal/pkg/billing"
	"github.com/ManuelReschke/ShopFox/internal/pkg/cache"
	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
	"github.com/ManuelReschke/ShopFox/internal/pkg/checkout"
	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
	"github.com/ManuelReschke/ShopFox/internal/pkg/database"
	"github.com/ManuelReschke/ShopFox/internal/pkg/env"
	"github.com/ManuelReschke/ShopFox/internal/pkg/hcaptcha"
	"github.com/ManuelReschke/ShopFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/ShopFox/internal/pkg/middleware"
	"github.com/ManuelReschke/ShopFox/internal/pkg/router"
	"github.com/ManuelReschke/ShopFox/internal/pkg/session"
	"github.com/ManuelReschke/ShopFox/views"
)

func main() {
	env.SetupEnvFile()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	app, err := NewApplication(cfg)
	if err != nil {
		log.Fatalf("[app] %v", err)
	}
	log.Fatal(app.Listen(cfg.ListenAddr()))
}

func NewApplication(cfg config.Config) (*fiber.App, error) {
	db, err := database.SetupDatabase(cfg.Database, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	repos := repository.NewRepositories(db)

	var counters *counter.Counters
	sessionStorage := fiber.Storage(nil)
	if rdb := cache.SetupCache(cfg.Cache); rdb != nil {
		counters = counter.New(rdb)
		sessionStorage = session.NewRedisStorage(cfg.Cache)
	} else {
		log.Println("[cache] redis unavailable, sessions are kept in memory")
	}
	store := session.NewSessionStore(sessionStorage, !cfg.IsDev())

	cat := catalog.Default()
	builder := checkout.NewBuilder(checkout.Config{
		SuccessURL: cfg.Checkout.SuccessURL,
		CancelURL:  cfg.Checkout.CancelURL,
		Currency:   cfg.Checkout.Currency,
	}, cat, repos.Order, billing.NewStripeGateway(cfg.Stripe.SecretKey), counters)

	reconciler := billing.NewReconciler(billing.StripeVerifier{}, cfg.Stripe.WebhookSecret, repos.Order, counters)

	var captcha *hcaptcha.Client
	if cfg.HCaptchaEnabled() {
		captcha = hcaptcha.New(cfg.HCaptchaSecret)
	}

	app := fiber.New(fiber.Config{
		Views: views.NewEngine(),
	})

	// recovery and logging
	app.Use(recover.New(), middleware.RequestID, logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
	}))

	// fiber metrics
	if cfg.MetricsEnabled() {
		metricsAuth := basicauth.New(basicauth.Config{
			Users: map[string]string{
				cfg.MetricsUser: cfg.MetricsPassword,
			},
		})
		app.Get("/metrics", metricsAuth, monitor.New())
		app.Get("/metrics/counters", metricsAuth, controllers.HandleCounters(counters))
	}

	// ROUTER
	router.InstallRouter(app, router.Deps{
		Sessions:     store,
		Auth:         controllers.NewAuthController(repos.User, store, captcha, cfg.HCaptchaSiteKey),
		Shop:         controllers.NewShopController(cat, cfg.Checkout.Currency, builder, repos.Order),
		Billing:      controllers.NewBillingController(reconciler),
		SecureCookie: !cfg.IsDev(),
	})

	return app, nil
}
