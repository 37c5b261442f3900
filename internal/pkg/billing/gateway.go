package billing

import (
	"context"

	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
)

// MetadataOrderID is the session metadata key carrying the local order id.
const MetadataOrderID = "order_id"

// CheckoutRequest is everything the gateway needs to open a hosted payment page.
type CheckoutRequest struct {
	OrderReference string
	LineItems      []catalog.LineItem
	SuccessURL     string
	CancelURL      string
}

// CheckoutSession is the gateway's answer; URL is where the buyer is sent.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway creates hosted checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// Event is a verified webhook event reduced to the fields reconciliation uses.
// OrderID is only set for completed checkout sessions.
type Event struct {
	ID      string
	Type    string
	OrderID string
}

// Verifier checks a webhook signature and decodes the event.
type Verifier interface {
	Verify(payload []byte, signature, secret string) (*Event, error)
}
