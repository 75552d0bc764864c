package catalog

import (
	"context"

	"go.uber.org/zap"
)

// AllCategories is the sentinel meaning "no category filter".
const AllCategories = "All"

// Page holds the catalog data for one storefront page activation:
// products and categories fetched once on load, filtered client-side.
type Page struct {
	client     *Client
	log        *zap.Logger
	products   []Product
	categories []string
}

func NewPage(client *Client, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{client: client, log: log}
}

// Load fires both fetches. A failed fetch is logged and leaves the
// corresponding list at its previous value; there is no retry and no
// blocking error.
func (p *Page) Load(ctx context.Context) {
	products, err := p.client.FetchProducts(ctx)
	if err != nil {
		p.log.Warn("Failed to fetch products", zap.Error(err))
	} else {
		p.products = products
	}

	categories, err := p.client.FetchCategories(ctx)
	if err != nil {
		p.log.Warn("Failed to fetch categories", zap.Error(err))
	} else {
		p.categories = categories
	}
}

func (p *Page) Products() []Product {
	return p.products
}

func (p *Page) Categories() []string {
	return p.categories
}

// FilterByCategory returns the products matching the category by exact
// string equality. The AllCategories sentinel returns the input as-is.
func FilterByCategory(products []Product, category string) []Product {
	if category == AllCategories || category == "" {
		return products
	}
	filtered := []Product{}
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
