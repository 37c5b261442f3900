package router

import (
	"github.com/ManuelReschke/ShopFox/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
	deps Deps
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// UserContext must run before any route that looks at the login state
	app.Use(middleware.UserContext(h.deps.Sessions))

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter(deps Deps) *HttpRouter {
	return &HttpRouter{deps: deps}
}
