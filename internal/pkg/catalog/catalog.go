package catalog

import (
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "usd"

// Product is one purchasable item. UnitPrice is in whole currency units.
type Product struct {
	Slot      string
	Name      string
	UnitPrice int64
}

// Catalog is the ordered product list. The order is the display order and
// the order of the priced line items.
type Catalog []Product

// LineItem is a priced cart position as handed to the payment gateway.
// UnitAmount is in minor units (cents).
type LineItem struct {
	Currency   string
	Name       string
	UnitAmount int64
	Quantity   int64
}

// Default returns the three fixed products of the shop.
func Default() Catalog {
	return Catalog{
		{Slot: "p1", Name: "Product A", UnitPrice: 10},
		{Slot: "p2", Name: "Product B", UnitPrice: 20},
		{Slot: "p3", Name: "Product C", UnitPrice: 30},
	}
}

// Price turns a cart into line items for every product with a positive
// quantity and returns the order total in whole units.
func (c Catalog) Price(cart Cart, currency string) ([]LineItem, int64) {
	if currency == "" {
		currency = DefaultCurrency
	}

	var lines []LineItem
	var total int64
	for _, p := range c {
		qty := cart.Quantity(p.Slot)
		if qty <= 0 {
			continue
		}
		lines = append(lines, LineItem{
			Currency:   currency,
			Name:       p.Name,
			UnitAmount: p.UnitPrice * 100,
			Quantity:   qty,
		})
		total += qty * p.UnitPrice
	}
	return lines, total
}

// FormatPrice renders a whole-unit amount with two decimals, e.g. 10 -> "10.00".
func FormatPrice(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}

// FormatMinor renders a minor-unit amount, e.g. 1050 -> "10.50".
func FormatMinor(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
