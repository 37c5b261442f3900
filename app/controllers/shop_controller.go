package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/ShopFox/app/models"
	"github.com/ManuelReschke/ShopFox/app/repository"
	"github.com/ManuelReschke/ShopFox/internal/pkg/catalog"
	"github.com/ManuelReschke/ShopFox/internal/pkg/checkout"
	"github.com/ManuelReschke/ShopFox/internal/pkg/usercontext"
)

const orderHistoryLimit = 50

type ShopController struct {
	catalog  catalog.Catalog
	currency string
	builder  *checkout.Builder
	orders   repository.OrderRepository
}

func NewShopController(cat catalog.Catalog, currency string, builder *checkout.Builder, orders repository.OrderRepository) *ShopController {
	return &ShopController{catalog: cat, currency: currency, builder: builder, orders: orders}
}

// HandleCart shows the catalog and the user's orders, newest first.
func (sc *ShopController) HandleCart(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	orders, err := sc.orders.ListByUser(c.UserContext(), userID, orderHistoryLimit)
	if err != nil {
		log.Printf("[shop] list orders for user %d: %v", userID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load orders")
	}

	return render(c, "home", "", fiber.Map{
		"Products":    sc.catalog,
		"Orders":      orders,
		"Currency":    sc.currency,
		"MaxQuantity": catalog.MaxQuantity,
	})
}

// HandleCheckout prices the submitted cart and sends the buyer to the hosted payment page.
func (sc *ShopController) HandleCheckout(c *fiber.Ctx) error {
	cart, err := catalog.ParseCart(sc.catalog, func(key string) string {
		return c.FormValue(key)
	})
	if err != nil {
		return flashError(c, "Quantities must be between 0 and 1000", "/")
	}

	res, err := sc.builder.Start(c.UserContext(), usercontext.GetUserID(c), cart)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return flashError(c, "Checkout is currently unavailable, please try again", "/")
	}

	return c.Redirect(res.URL, fiber.StatusSeeOther)
}

// HandleSuccess is the gateway's return page. With ?order=<ref> it also shows
// the current status of that order if it belongs to the user.
func (sc *ShopController) HandleSuccess(c *fiber.Ctx) error {
	data := fiber.Map{}
	if order := sc.ownOrder(c, c.Query(checkout.SuccessOrderParam)); order != nil {
		data["Order"] = order
	}
	return render(c, "success", " | Thank you", data)
}

func (sc *ShopController) ownOrder(c *fiber.Ctx, ref string) *models.Order {
	if ref == "" {
		return nil
	}
	id, err := models.ParseOrderReference(ref)
	if err != nil {
		return nil
	}
	order, err := sc.orders.GetByID(c.UserContext(), id)
	if err != nil {
		log.Printf("[shop] load order %d: %v", id, err)
		return nil
	}
	if order.UserID != usercontext.GetUserID(c) {
		return nil
	}
	return order
}
