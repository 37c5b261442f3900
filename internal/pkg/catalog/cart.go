package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxQuantity is the largest quantity accepted per product.
const MaxQuantity = 1000

var ErrInvalidQuantity = errors.New("invalid quantity")

var validate = validator.New()

type cartEntry struct {
	Slot     string `validate:"required"`
	Quantity int64  `validate:"gte=0,lte=1000"`
}

// Cart maps a product slot to the requested quantity.
type Cart map[string]int64

// Quantity returns the quantity for a slot, 0 when absent.
func (c Cart) Quantity(slot string) int64 {
	return c[slot]
}

// IsEmpty reports whether no product has a positive quantity.
func (c Cart) IsEmpty() bool {
	for _, q := range c {
		if q > 0 {
			return false
		}
	}
	return true
}

// ParseCart reads one form value per catalog slot. Missing and non-numeric
// values count as 0; negative or oversized quantities are rejected.
func ParseCart(c Catalog, lookup func(key string) string) (Cart, error) {
	cart := make(Cart, len(c))
	for _, p := range c {
		qty := parseQuantity(lookup(p.Slot))
		entry := cartEntry{Slot: p.Slot, Quantity: qty}
		if err := validate.Struct(entry); err != nil {
			return nil, fmt.Errorf("%w: %s=%d", ErrInvalidQuantity, p.Slot, qty)
		}
		cart[p.Slot] = qty
	}
	return cart, nil
}

func parseQuantity(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return qty
}
