package feed

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/storelink/backend/internal/domain/catalog"
)

// Fixed artifact names, referenced by sync and status responses.
const (
	CSVArtifactName      = "catalog.csv"
	BusinessArtifactName = "whatsapp_catalog.json"
	DetailArtifactName   = "products_detail.json"
)

// ArtifactNames lists every artifact a successful sync publishes, in
// publish order.
var ArtifactNames = []string{CSVArtifactName, BusinessArtifactName, DetailArtifactName}

// businessCatalogName is the fixed catalog name in the business feed.
const businessCatalogName = "Product Catalog"

// businessCondition is the fixed item condition in the business feed.
const businessCondition = "new"

// csvHeader is the fixed 13-column header of the tabular artifact.
var csvHeader = []string{
	"id", "name", "description", "price", "currency", "availability",
	"stock", "sku", "category", "brand", "tags", "url", "image_url",
}

// EncodeCSV encodes products as a delimited table with the fixed header,
// one row per product in input order. Fields containing the delimiter or
// quotes are quote-escaped by the writer.
func EncodeCSV(products []catalog.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Description,
			p.Price.StringFixed(2),
			p.Currency,
			p.Availability,
			strconv.FormatInt(p.Stock, 10),
			p.SKU,
			p.Category,
			p.Brand,
			p.Tags,
			p.URL,
			p.ImageURL,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// BusinessCatalog is the business-catalog feed document.
type BusinessCatalog struct {
	Name     string                 `json:"name"`
	Products []BusinessCatalogEntry `json:"products"`
}

// BusinessCatalogEntry is one item in the business-catalog feed. Price is an
// integer amount of minor currency units as required by commerce catalogs.
type BusinessCatalogEntry struct {
	RetailerID   string `json:"retailer_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	Availability string `json:"availability"`
	Condition    string `json:"condition"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	URL          string `json:"url"`
	ImageURL     string `json:"image_url"`
}

// EncodeBusinessCatalog encodes products as the business-catalog document.
// Field order is fixed by the struct definitions, so output is byte-stable.
func EncodeBusinessCatalog(products []catalog.Product) ([]byte, error) {
	doc := BusinessCatalog{
		Name:     businessCatalogName,
		Products: make([]BusinessCatalogEntry, 0, len(products)),
	}
	for i := range products {
		p := &products[i]
		doc.Products = append(doc.Products, BusinessCatalogEntry{
			RetailerID:   strconv.FormatInt(p.ID, 10),
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.PriceMinorUnits(),
			Currency:     p.Currency,
			Availability: p.Availability,
			Condition:    businessCondition,
			Brand:        p.Brand,
			Category:     p.Category,
			URL:          p.URL,
			ImageURL:     p.ImageURL,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeDetail encodes the full normalized product collection pretty-printed
// for human review.
func EncodeDetail(products []catalog.Product) ([]byte, error) {
	if products == nil {
		products = []catalog.Product{}
	}
	return json.MarshalIndent(products, "", "  ")
}
