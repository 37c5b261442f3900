package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/ManuelReschke/ShopFox/app/controllers"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps are the constructed collaborators the routes dispatch to.
type Deps struct {
	Sessions     *session.Store
	Auth         *controllers.AuthController
	Shop         *controllers.ShopController
	Billing      *controllers.BillingController
	SecureCookie bool
}

func InstallRouter(app *fiber.App, deps Deps) {
	setup(app, NewHttpRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
