package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/ShopFox/internal/pkg/session"
	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
)

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	store := session.NewSessionStore(nil, false)
	app := fiber.New()
	app.Use(UserContext(store))
	app.Get("/", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendString("cart")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestUserContextFromSession(t *testing.T) {
	store := session.NewSessionStore(nil, false)
	app := fiber.New()
	app.Use(UserContext(store))
	app.Post("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(usercontext.KeyUserID, uint(3))
		sess.Set(usercontext.KeyUsername, "alice")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/me", RequireAuth, func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		return c.JSON(uc)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		usercontext.Set(c, usercontext.UserContext{UserID: 1, IsLoggedIn: true})
		return c.Next()
	})
	app.Get("/login", RedirectIfAuthenticated, func(c *fiber.Ctx) error {
		return c.SendString("form")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}
