package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Defaults applied when a remote record is missing a field. Downstream
// consumers never see empty brand/category values.
const (
	DefaultBrand       = "Unbranded"
	DefaultCategory    = "General"
	DefaultDescription = ""

	// DescriptionMaxLen caps the plain-text description length
	DescriptionMaxLen = 300
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer converts raw remote product records into the stable internal
// Product shape. Normalization is deterministic and total: malformed or
// partial records normalize to documented defaults instead of failing.
type Normalizer struct {
	// StorefrontBaseURL is the public storefront root used to build
	// canonical product URLs, e.g. "https://my-shop.example.com".
	StorefrontBaseURL string
	// Currency is the ISO 4217 code tagged onto every normalized price.
	Currency string
}

// NewNormalizer creates a Normalizer for the given storefront and currency.
func NewNormalizer(storefrontBaseURL, currency string) *Normalizer {
	return &Normalizer{
		StorefrontBaseURL: strings.TrimRight(storefrontBaseURL, "/"),
		Currency:          currency,
	}
}

// Normalize converts one raw remote record into a Product.
func (n *Normalizer) Normalize(raw RemoteProduct) Product {
	price := decimal.Zero
	stock := int64(0)
	sku := ""
	if len(raw.Variants) > 0 {
		first := raw.Variants[0]
		if parsed, err := decimal.NewFromString(strings.TrimSpace(first.Price)); err == nil && !parsed.IsNegative() {
			price = parsed
		}
		if first.InventoryQuantity > 0 {
			stock = first.InventoryQuantity
		}
		sku = first.SKU
	}

	imageURL := ""
	if len(raw.Images) > 0 {
		imageURL = raw.Images[0].URL
	}

	brand := raw.Vendor
	if brand == "" {
		brand = DefaultBrand
	}
	category := raw.ProductType
	if category == "" {
		category = DefaultCategory
	}

	product := Product{
		ID:          raw.ID,
		Name:        raw.Title,
		Description: normalizeDescription(raw.BodyHTML),
		Price:       price,
		Currency:    n.Currency,
		Stock:       stock,
		SKU:         sku,
		Category:    category,
		Brand:       brand,
		Tags:        raw.Tags,
		URL:         n.StorefrontBaseURL + "/products/" + raw.Handle,
		ImageURL:    imageURL,
	}

	product.Availability = AvailabilityOutOfStock
	if product.InStock() {
		product.Availability = AvailabilityInStock
	}
	return product
}

// NormalizeAll converts a full raw collection, preserving input order.
func (n *Normalizer) NormalizeAll(raws []RemoteProduct) []Product {
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, n.Normalize(raw))
	}
	return products
}

// normalizeDescription strips markup, collapses entities and whitespace runs,
// trims, and caps the result at DescriptionMaxLen characters.
func normalizeDescription(html string) string {
	if html == "" {
		return DefaultDescription
	}
	text := htmlTagPattern.ReplaceAllString(html, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > DescriptionMaxLen {
		return string(runes[:DescriptionMaxLen])
	}
	return text
}
