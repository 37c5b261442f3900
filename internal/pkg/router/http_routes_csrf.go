package router

import (
	"strings"
	"time"

	"github.com/ManuelReschke/ShopFox/app/controllers"
	"github.com/ManuelReschke/ShopFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     controllers.CSRFContextKey,
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   h.deps.SecureCookie,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/webhook")
		},
	}

	authLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
	})

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", middleware.RequireAuth, h.deps.Shop.HandleCart)
	group.Post("/", middleware.RequireAuth, h.deps.Shop.HandleCheckout)
	group.Get("/login", middleware.RedirectIfAuthenticated, h.deps.Auth.HandleLogin)
	group.Post("/login", authLimiter, h.deps.Auth.HandleLogin)
	group.Get("/register", middleware.RedirectIfAuthenticated, h.deps.Auth.HandleRegister)
	group.Post("/register", authLimiter, h.deps.Auth.HandleRegister)
	group.Post("/logout", middleware.RequireAuth, h.deps.Auth.HandleLogout)
}
