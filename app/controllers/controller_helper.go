package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/ShopFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
	"github.com/ManuelReschke/ShopFox/views"
)

// CSRFContextKey is where the csrf middleware stores the form token.
const CSRFContextKey = "csrf"

func csrfToken(c *fiber.Ctx) string {
	if token, ok := c.Locals(CSRFContextKey).(string); ok {
		return token
	}
	return ""
}

// render fills the values every page needs and renders into the main layout.
func render(c *fiber.Ctx, name, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	uc := usercontext.GetUserContext(c)
	fm := flash.Get(c)
	if fm == nil {
		fm = fiber.Map{}
	}
	data["Title"] = title
	data["FromProtected"] = uc.IsLoggedIn
	data["Username"] = uc.Username
	data["CSRF"] = csrfToken(c)
	data["Flash"] = fm
	return c.Render(name, data, views.Layout)
}

func flashError(c *fiber.Ctx, message, to string) error {
	return flash.WithError(c, fiber.Map{"type": "error", "message": message}).Redirect(to)
}

func flashSuccess(c *fiber.Ctx, message, to string) error {
	return flash.WithSuccess(c, fiber.Map{"type": "success", "message": message}).Redirect(to)
}

// HandleHealthz is the liveness probe.
func HandleHealthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleCounters exposes the shop counters as JSON.
func HandleCounters(counters *counter.Counters) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := counters.Snapshot(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "counters_unavailable"})
		}
		return c.JSON(snap)
	}
}
