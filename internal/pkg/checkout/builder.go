package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/ManuelReschke/ShopFox/app/models"
	"github.com/ManuelReschke/ShopFox/app/repository"
	"github.com/ManuelReschke/ShopFox/internal/pkg/billing"
	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
	"github.com/ManuelReschke/ShopFox/internal/pkg/metrics/counter"
)

var ErrEmptyCart = errors.New("cart is empty")

// SuccessOrderParam carries the order reference back to the success page.
const SuccessOrderParam = "order"

type Config struct {
	SuccessURL string
	CancelURL  string
	Currency   string
}

// Result is a started checkout: the pending order and where to send the buyer.
type Result struct {
	Order     *models.Order
	LineItems []catalog.LineItem
	URL       string
}

// Builder prices carts, persists pending orders and opens gateway sessions.
type Builder struct {
	cfg      Config
	catalog  catalog.Catalog
	orders   repository.OrderRepository
	gateway  billing.Gateway
	counters *counter.Counters
}

func NewBuilder(cfg Config, cat catalog.Catalog, orders repository.OrderRepository, gateway billing.Gateway, counters *counter.Counters) *Builder {
	if cfg.Currency == "" {
		cfg.Currency = catalog.DefaultCurrency
	}
	return &Builder{cfg: cfg, catalog: cat, orders: orders, gateway: gateway, counters: counters}
}

// Start runs the checkout for one user. An empty cart returns ErrEmptyCart
// without touching the store. A gateway failure leaves the order pending.
func (b *Builder) Start(ctx context.Context, userID uint, cart catalog.Cart) (*Result, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines, total := b.catalog.Price(cart, b.cfg.Currency)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := models.NewPendingOrder(userID, total)
	if err := b.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	_ = b.counters.Inc(ctx, counter.OrdersCreated)

	sess, err := b.gateway.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		OrderReference: order.Reference(),
		LineItems:      lines,
		SuccessURL:     successURL(b.cfg.SuccessURL, order.Reference()),
		CancelURL:      b.cfg.CancelURL,
	})
	if err != nil {
		log.Printf("[checkout] order %d: gateway session failed: %v", order.ID, err)
		return nil, fmt.Errorf("open checkout session for order %d: %w", order.ID, err)
	}

	log.Printf("[checkout] order %d for user %d amount %s session %s", order.ID, userID, catalog.FormatPrice(total), sess.ID)
	return &Result{Order: order, LineItems: lines, URL: sess.URL}, nil
}

// successURL appends the order reference without re-encoding the rest, so
// gateway placeholders like {CHECKOUT_SESSION_ID} survive.
func successURL(base, ref string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + SuccessOrderParam + "=" + url.QueryEscape(ref)
}
