package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ShopFox/internal/pkg/billing"
)

type BillingController struct {
	reconciler *billing.Reconciler
}

func NewBillingController(reconciler *billing.Reconciler) *BillingController {
	return &BillingController{reconciler: reconciler}
}

// HandleStripeWebhook acknowledges every verified event with 200, rejects
// unverifiable deliveries with 400 and reports storage failures as 500 so
// Stripe retries them.
func (bc *BillingController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get(billing.SignatureHeader)

	outcome, err := bc.reconciler.Reconcile(c.UserContext(), rawBody, signature)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "outcome": outcome})
}
