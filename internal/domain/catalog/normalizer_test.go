package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer("https://shop.example.com", "EUR")
}

func TestNormalize_FullRecord(t *testing.T) {
	n := newTestNormalizer()

	p := n.Normalize(RemoteProduct{
		ID:          123,
		Title:       "Blue Lamp",
		BodyHTML:    "<p>A <b>nice</b> lamp.&nbsp;&nbsp;Very bright.</p>",
		Vendor:      "Lumen Co",
		ProductType: "Lighting",
		Tags:        "lamp, blue, home",
		Handle:      "blue-lamp",
		Images:      []RemoteImage{{URL: "https://cdn.example.com/lamp.jpg"}},
		Variants: []RemoteVariant{
			{Price: "24.90", SKU: "LAMP-01", InventoryQuantity: 7},
			{Price: "29.90", SKU: "LAMP-02", InventoryQuantity: 0},
		},
	})

	assert.Equal(t, int64(123), p.ID)
	assert.Equal(t, "Blue Lamp", p.Name)
	assert.Equal(t, "A nice lamp. Very bright.", p.Description)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("24.90")))
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, AvailabilityInStock, p.Availability)
	assert.Equal(t, int64(7), p.Stock)
	assert.Equal(t, "LAMP-01", p.SKU)
	assert.Equal(t, "Lighting", p.Category)
	assert.Equal(t, "Lumen Co", p.Brand)
	assert.Equal(t, "https://shop.example.com/products/blue-lamp", p.URL)
	assert.Equal(t, "https://cdn.example.com/lamp.jpg", p.ImageURL)
}

func TestNormalize_RedMugExample(t *testing.T) {
	n := newTestNormalizer()

	p := n.Normalize(RemoteProduct{
		Title:    "Red Mug",
		Variants: []RemoteVariant{{Price: "9.5", InventoryQuantity: 0}},
		Images:   []RemoteImage{},
	})

	assert.Equal(t, "Red Mug", p.Name)
	assert.Equal(t, "€9.50", p.DisplayPrice())
	assert.Equal(t, AvailabilityOutOfStock, p.Availability)
	assert.Equal(t, int64(0), p.Stock)
	assert.Equal(t, "", p.ImageURL)
	assert.Equal(t, int64(950), p.PriceMinorUnits())
}

func TestNormalize_MissingEverything(t *testing.T) {
	n := newTestNormalizer()

	p := n.Normalize(RemoteProduct{ID: 1, Title: "Bare", Handle: "bare"})

	assert.True(t, p.Price.IsZero())
	assert.Equal(t, int64(0), p.Stock)
	assert.Equal(t, AvailabilityOutOfStock, p.Availability)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, DefaultBrand, p.Brand)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, "", p.SKU)
	assert.Equal(t, "", p.ImageURL)
	assert.Equal(t, "https://shop.example.com/products/bare", p.URL)
}

func TestNormalize_MalformedPriceAndNegativeStock(t *testing.T) {
	n := newTestNormalizer()

	p := n.Normalize(RemoteProduct{
		Variants: []RemoteVariant{{Price: "not-a-price", InventoryQuantity: -5}},
	})

	assert.True(t, p.Price.IsZero())
	assert.False(t, p.Price.IsNegative())
	assert.Equal(t, int64(0), p.Stock)
	assert.Equal(t, AvailabilityOutOfStock, p.Availability)
}

func TestNormalize_NegativePriceClampedToZero(t *testing.T) {
	n := newTestNormalizer()

	p := n.Normalize(RemoteProduct{
		Variants: []RemoteVariant{{Price: "-3.00", InventoryQuantity: 2}},
	})

	assert.True(t, p.Price.IsZero())
	assert.Equal(t, AvailabilityInStock, p.Availability)
}

func TestNormalize_DescriptionCappedAt300(t *testing.T) {
	n := newTestNormalizer()
	long := "<div>" + strings.Repeat("word ", 200) + "</div>"

	p := n.Normalize(RemoteProduct{BodyHTML: long})

	assert.LessOrEqual(t, len([]rune(p.Description)), DescriptionMaxLen)
	assert.NotContains(t, p.Description, "<")
}

func TestNormalize_StockAvailabilityConsistency(t *testing.T) {
	n := newTestNormalizer()

	for _, qty := range []int64{-10, 0, 1, 250} {
		p := n.Normalize(RemoteProduct{
			Variants: []RemoteVariant{{Price: "1.00", InventoryQuantity: qty}},
		})
		assert.Equal(t, p.Stock > 0, p.Availability == AvailabilityInStock,
			"stock %d must match availability label", qty)
		assert.Equal(t, p.InStock(), p.Availability == AvailabilityInStock)
		assert.GreaterOrEqual(t, p.Stock, int64(0))
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	n := newTestNormalizer()

	products := n.NormalizeAll([]RemoteProduct{
		{ID: 3, Title: "C"},
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
	})

	require.Len(t, products, 3)
	assert.Equal(t, int64(3), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)
	assert.Equal(t, int64(2), products[2].ID)
}

func TestSnapshot_LenOnNil(t *testing.T) {
	var s *Snapshot
	assert.Equal(t, 0, s.Len())

	s = NewSnapshot([]Product{{ID: 1}})
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.ProducedAt.IsZero())
}
