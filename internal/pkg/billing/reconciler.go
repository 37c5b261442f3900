package billing

import (
	"context"
	"errors"
	"log"

	"github.com/ManuelReschke/ShopFox/app/models"
	"github.com/ManuelReschke/ShopFox/internal/pkg/metrics/counter"
)

type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomeIgnored Outcome = "ignored"
)

// OrderMarker is the part of the order store reconciliation writes to.
type OrderMarker interface {
	MarkPaid(ctx context.Context, id uint) error
}

// Reconciler turns verified gateway events into order status changes.
type Reconciler struct {
	verifier Verifier
	secret   string
	orders   OrderMarker
	counters *counter.Counters
}

// NewReconciler wires a reconciler. counters may be nil.
func NewReconciler(verifier Verifier, secret string, orders OrderMarker, counters *counter.Counters) *Reconciler {
	if verifier == nil {
		verifier = StripeVerifier{}
	}
	return &Reconciler{verifier: verifier, secret: secret, orders: orders, counters: counters}
}

// Reconcile verifies one webhook delivery and applies it. Verification
// failures return ErrInvalidSignature and leave orders untouched; storage
// errors are returned as is.
func (r *Reconciler) Reconcile(ctx context.Context, payload []byte, signature string) (Outcome, error) {
	evt, err := r.verifier.Verify(payload, signature, r.secret)
	if err != nil {
		_ = r.counters.Inc(ctx, counter.WebhooksRejected)
		if !errors.Is(err, ErrInvalidSignature) {
			err = errors.Join(ErrInvalidSignature, err)
		}
		log.Printf("[webhook] rejected delivery: %v", err)
		return "", err
	}

	if evt.Type != EventCheckoutSessionCompleted {
		_ = r.counters.Inc(ctx, counter.WebhooksIgnored)
		return OutcomeIgnored, nil
	}

	orderID, perr := models.ParseOrderReference(evt.OrderID)
	if perr != nil || orderID == 0 {
		_ = r.counters.Inc(ctx, counter.WebhooksIgnored)
		log.Printf("[webhook] event %s has no usable order id %q", evt.ID, evt.OrderID)
		return OutcomeIgnored, nil
	}

	if err := r.orders.MarkPaid(ctx, orderID); err != nil {
		log.Printf("[webhook] mark order %d paid failed: %v", orderID, err)
		return "", err
	}
	_ = r.counters.Inc(ctx, counter.OrdersPaid)
	log.Printf("[webhook] order %d paid (event %s)", orderID, evt.ID)
	return OutcomePaid, nil
}
