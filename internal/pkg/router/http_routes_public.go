package router

import (
	"github.com/ManuelReschke/ShopFox/app/controllers"
	"github.com/ManuelReschke/ShopFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Get("/healthz", controllers.HandleHealthz)

	app.Get("/success", middleware.RequireAuth, h.deps.Shop.HandleSuccess)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", h.deps.Billing.HandleStripeWebhook)
	app.Post("/webhook", h.deps.Billing.HandleStripeWebhook)
}
