package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	SignatureHeader = "Stripe-Signature"

	EventCheckoutSessionCompleted = "checkout.session.completed"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// StripeVerifier validates the Stripe-Signature header (HMAC-SHA256 over
// "timestamp.payload") and decodes the event body.
type StripeVerifier struct{}

func (StripeVerifier) Verify(payload []byte, signature, secret string) (*Event, error) {
	sig := strings.TrimSpace(signature)
	secret = strings.TrimSpace(secret)
	if sig == "" || secret == "" {
		return nil, ErrInvalidSignature
	}

	evt, err := webhook.ConstructEventWithOptions(payload, sig, secret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventCheckoutSessionCompleted || evt.Data == nil {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %v", ErrInvalidSignature, err)
	}
	out.OrderID = cs.Metadata[MetadataOrderID]
	return out, nil
}
