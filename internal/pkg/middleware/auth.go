package middleware

import (
	icuser "github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	v := c.Locals(icuser.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RedirectIfAuthenticated sends logged-in users away from the login and register forms.
func RedirectIfAuthenticated(c *fiber.Ctx) error {
	if icuser.IsLoggedIn(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}
