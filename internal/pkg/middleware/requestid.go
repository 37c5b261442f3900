package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
)

const HeaderRequestID = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or assigns a fresh one.
func RequestID(c *fiber.Ctx) error {
	rid := c.Get(HeaderRequestID)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Locals(usercontext.KeyRequestID, rid)
	c.Set(HeaderRequestID, rid)
	return c.Next()
}

// GetRequestID returns the id assigned by RequestID, or "" outside of it.
func GetRequestID(c *fiber.Ctx) string {
	rid, _ := c.Locals(usercontext.KeyRequestID).(string)
	return rid
}
