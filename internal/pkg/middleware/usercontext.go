package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
)

// UserContext resolves the session into a usercontext.UserContext for every
// request. Anonymous visitors and broken sessions both end up logged out.
func UserContext(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			usercontext.Set(c, usercontext.UserContext{})
			return c.Next()
		}

		userID, ok := sess.Get(usercontext.KeyUserID).(uint)
		if !ok || userID == 0 {
			usercontext.Set(c, usercontext.UserContext{})
			return c.Next()
		}

		username, _ := sess.Get(usercontext.KeyUsername).(string)
		usercontext.Set(c, usercontext.UserContext{
			UserID:     userID,
			Username:   username,
			IsLoggedIn: true,
		})
		return c.Next()
	}
}
