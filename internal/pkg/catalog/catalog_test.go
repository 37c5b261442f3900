package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func form(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Len(t, c, 3)
	assert.Equal(t, "p1", c[0].Slot)
	assert.Equal(t, int64(10), c[0].UnitPrice)
	assert.Equal(t, "Product C", c[2].Name)
	assert.Equal(t, int64(30), c[2].UnitPrice)
}

func TestPriceTotalsQuantityTimesUnitPrice(t *testing.T) {
	c := Default()
	cart, err := ParseCart(c, form(map[string]string{"p1": "2", "p3": "1"}))
	require.NoError(t, err)

	lines, total := c.Price(cart, "usd")
	assert.Equal(t, int64(50), total)
	require.Len(t, lines, 2)
	assert.Equal(t, LineItem{Currency: "usd", Name: "Product A", UnitAmount: 1000, Quantity: 2}, lines[0])
	assert.Equal(t, LineItem{Currency: "usd", Name: "Product C", UnitAmount: 3000, Quantity: 1}, lines[1])
}

func TestPriceDefaultsCurrency(t *testing.T) {
	lines, _ := Default().Price(Cart{"p2": 1}, "")
	require.Len(t, lines, 1)
	assert.Equal(t, DefaultCurrency, lines[0].Currency)
}

func TestParseCartLeniency(t *testing.T) {
	cart, err := ParseCart(Default(), form(map[string]string{"p1": "abc", "p2": " 3 "}))
	require.NoError(t, err)
	assert.Equal(t, int64(0), cart.Quantity("p1"))
	assert.Equal(t, int64(3), cart.Quantity("p2"))
	assert.Equal(t, int64(0), cart.Quantity("p3"))
	assert.False(t, cart.IsEmpty())
}

func TestParseCartEmpty(t *testing.T) {
	cart, err := ParseCart(Default(), form(map[string]string{"p1": "0"}))
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	lines, total := Default().Price(cart, "usd")
	assert.Empty(t, lines)
	assert.Zero(t, total)
}

func TestParseCartRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"negative", "-1"},
		{"too large", "1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCart(Default(), form(map[string]string{"p2": tt.value}))
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		})
	}

	cart, err := ParseCart(Default(), form(map[string]string{"p2": "1000"}))
	require.NoError(t, err)
	assert.Equal(t, int64(MaxQuantity), cart.Quantity("p2"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10.00", FormatPrice(10))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "10.50", FormatMinor(1050))
}
