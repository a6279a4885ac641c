package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Remote (raw) product shapes
// ---------------------------------------------------------------------------

// RemoteVariant is one sellable variant of a remote product.
type RemoteVariant struct {
	Price             string
	SKU               string
	InventoryQuantity int64
}

// RemoteImage is one image attached to a remote product.
type RemoteImage struct {
	URL string
}

// RemoteProduct is a platform-neutral raw product record as returned by the
// remote e-commerce platform. It only lives for the duration of one fetch;
// nothing downstream of Normalize retains it.
type RemoteProduct struct {
	ID          int64
	Title       string
	BodyHTML    string
	Vendor      string
	ProductType string
	Tags        string
	Handle      string
	Images      []RemoteImage
	Variants    []RemoteVariant
}

// ---------------------------------------------------------------------------
// Normalized product
// ---------------------------------------------------------------------------

// Availability labels used across all encoded representations.
const (
	AvailabilityInStock    = "in stock"
	AvailabilityOutOfStock = "out of stock"
)

// Product is the stable internal product representation, independent of the
// remote platform's schema. Immutable once built.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Availability string          `json:"availability"`
	Stock        int64           `json:"stock"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Tags         string          `json:"tags"`
	URL          string          `json:"url"`
	ImageURL     string          `json:"image_url"`
}

// InStock reports whether the product is available for sale.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// DisplayPrice formats the price with its currency symbol for human-facing
// output, e.g. "€9.50".
func (p *Product) DisplayPrice() string {
	amount := p.Price.StringFixed(2)
	switch p.Currency {
	case "EUR":
		return "€" + amount
	case "USD":
		return "$" + amount
	case "GBP":
		return "£" + amount
	default:
		return amount + " " + p.Currency
	}
}

// PriceMinorUnits returns the price as an integer amount of minor currency
// units (cents), rounded half-up. Business catalog feeds require this form.
func (p *Product) PriceMinorUnits() int64 {
	return p.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ---------------------------------------------------------------------------
// Snapshot
// ---------------------------------------------------------------------------

// Snapshot is the complete, atomically-replaced set of normalized products
// currently considered current. A snapshot is never mutated after creation.
type Snapshot struct {
	Products   []Product `json:"products"`
	ProducedAt time.Time `json:"produced_at"`
}

// NewSnapshot builds a snapshot over the given products, stamped now.
func NewSnapshot(products []Product) *Snapshot {
	return &Snapshot{
		Products:   products,
		ProducedAt: time.Now().UTC(),
	}
}

// Len returns the number of products in the snapshot. Safe on nil.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Products)
}
