package shopify

import (
	"github.com/storelink/backend/internal/domain/catalog"
)

// ---------------------------------------------------------------------------
// Admin API wire types (products endpoint)
// ---------------------------------------------------------------------------

// ProductsResponse is the body of GET /admin/api/{version}/products.json
type ProductsResponse struct {
	Products []ProductPayload `json:"products"`
}

// ProductPayload is one product as returned by the Admin API
type ProductPayload struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Tags        string           `json:"tags"`
	Handle      string           `json:"handle"`
	Images      []ImagePayload   `json:"images"`
	Variants    []VariantPayload `json:"variants"`
}

// VariantPayload is one variant of a product
type VariantPayload struct {
	ID                int64  `json:"id"`
	Price             string `json:"price"`
	SKU               string `json:"sku"`
	InventoryQuantity int64  `json:"inventory_quantity"`
}

// ImagePayload is one product image
type ImagePayload struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// ErrorResponse is the error body returned by the Admin API on failure
type ErrorResponse struct {
	Errors any `json:"errors"`
}

// toRemote converts a wire product into the platform-neutral raw shape
func (p *ProductPayload) toRemote() catalog.RemoteProduct {
	remote := catalog.RemoteProduct{
		ID:          p.ID,
		Title:       p.Title,
		BodyHTML:    p.BodyHTML,
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
		Tags:        p.Tags,
		Handle:      p.Handle,
	}
	for _, img := range p.Images {
		remote.Images = append(remote.Images, catalog.RemoteImage{URL: img.Src})
	}
	for _, v := range p.Variants {
		remote.Variants = append(remote.Variants, catalog.RemoteVariant{
			Price:             v.Price,
			SKU:               v.SKU,
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	return remote
}
