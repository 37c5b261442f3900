package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/ShopFox/app/controllers"
	"github.com/ManuelReschke/ShopFox/app/models"
	"github.com/ManuelReschke/ShopFox/internal/pkg/billing"
	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
	"github.com/ManuelReschke/ShopFox/internal/pkg/checkout"
	"github.com/ManuelReschke/ShopFox/internal/pkg/session"
	"github.com/ManuelReschke/ShopFox/views"
)

type noUsers struct{}

func (noUsers) Create(context.Context, *models.User) error { return nil }
func (noUsers) GetByName(context.Context, string) (*models.User, error) {
	return nil, errors.New("record not found")
}
func (noUsers) ExistsByName(context.Context, string) (bool, error)     { return false, nil }
func (noUsers) TouchLastLogin(context.Context, uint, time.Time) error { return nil }

type noOrders struct{ marked int }

func (o *noOrders) Create(context.Context, *models.Order) error { return nil }
func (o *noOrders) GetByID(context.Context, uint) (*models.Order, error) {
	return nil, errors.New("record not found")
}
func (o *noOrders) ListByUser(context.Context, uint, int) ([]models.Order, error) { return nil, nil }
func (o *noOrders) MarkPaid(context.Context, uint) error {
	o.marked++
	return nil
}

type noGateway struct{}

func (noGateway) CreateCheckoutSession(context.Context, billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	return &billing.CheckoutSession{URL: "https://pay.test"}, nil
}

func newApp(t *testing.T) (*fiber.App, *noOrders) {
	t.Helper()
	store := session.NewSessionStore(nil, false)
	orders := &noOrders{}
	cat := catalog.Default()
	builder := checkout.NewBuilder(checkout.Config{SuccessURL: "http://shop.test/success", CancelURL: "http://shop.test/"}, cat, orders, noGateway{}, nil)

	app := fiber.New(fiber.Config{Views: views.NewEngine()})
	InstallRouter(app, Deps{
		Sessions: store,
		Auth:     controllers.NewAuthController(noUsers{}, store, nil, ""),
		Shop:     controllers.NewShopController(cat, "usd", builder, orders),
		Billing:  controllers.NewBillingController(billing.NewReconciler(billing.StripeVerifier{}, "whsec_router", orders, nil)),
	})
	return app, orders
}

func TestCartRedirectsToLogin(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/success", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginFormCarriesCSRFToken(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `name="_csrf"`)
	assert.NotContains(t, string(body), `name="_csrf" value=""`)
}

func TestFormPostWithoutCSRFIsForbidden(t *testing.T) {
	app, _ := newApp(t)

	form := url.Values{"username": {"alice"}, "password": {"secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

var csrfField = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func TestLogoutRequiresCSRFToken(t *testing.T) {
	app, _ := newApp(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// with a valid token the request reaches the auth check
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/login", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	m := csrfField.FindStringSubmatch(string(body))
	require.Len(t, m, 2)

	form := url.Values{"_csrf": {m[1]}}
	req = httptest.NewRequest(http.MethodPost, "/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestWebhookRoutesSkipCSRF(t *testing.T) {
	app, orders := newApp(t)

	for _, path := range []string{"/webhooks/stripe", "/webhook"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"id":"evt_1"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(billing.SignatureHeader, "t=1,v1=00")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
	assert.Zero(t, orders.marked)
}

func TestHealthz(t *testing.T) {
	app, _ := newApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
