package catalog

import (
	"sort"
	"strings"

	"snatchup/models"
)

// Hardcoded reference catalog. Immutable; handlers and stores copy what they
// need out of it.
var products = []models.Product{
	{ID: 1, Name: "Smart 4K TV", Price: 699.99, Category: "electronics", ImageURL: "/static/productpic/TV.jpeg", Description: "55-inch 4K Ultra HD Smart LED TV with HDR"},
	{ID: 2, Name: "Wireless Headphones", Price: 149.99, Category: "electronics", ImageURL: "/static/productpic/WirelessHeadphone.jpeg", Description: "Noise-cancelling Bluetooth headphones with 30-hour battery life"},
	{ID: 3, Name: "Designer Leather Handbag", Price: 299.99, Category: "fashion", ImageURL: "/static/productpic/DesignerLeatherHandbag.jpeg", Description: "Genuine leather handbag with gold-tone hardware"},
	{ID: 4, Name: "Premium Denim Jeans", Price: 89.99, Category: "fashion", ImageURL: "/static/productpic/DenimJeans.jpeg", Description: "High-waisted slim-fit jeans with stretch comfort"},
	{ID: 5, Name: "Modern Coffee Table", Price: 249.99, Category: "home & living", ImageURL: "/static/productpic/ModernCoffeeTable.jpeg", Description: "Mid-century modern coffee table with storage shelf"},
	{ID: 6, Name: "Smart Speaker", Price: 79.99, Category: "electronics", ImageURL: "/static/productpic/SmartSpeaker.jpeg", Description: "Voice-controlled smart speaker with premium sound"},
	{ID: 7, Name: "Luxury Watch", Price: 399.99, Category: "fashion", ImageURL: "/static/productpic/Luxarywatch.jpeg", Description: "Automatic mechanical watch with leather strap"},
	{ID: 8, Name: "Bedding Set", Price: 129.99, Category: "home & living", ImageURL: "/static/productpic/BeddingSet.jpeg", Description: "100% cotton 400 thread count bedding set with duvet cover"},
}

// Filter narrows and orders the catalog listing. Zero values mean "no
// constraint"; SortBy defaults to newest (highest id first).
type Filter struct {
	Category string
	Query    string
	MinPrice float64
	MaxPrice float64
	SortBy   string // newest, price_asc, price_desc, name_asc
}

// List returns the catalog entries matching the filter, sorted.
func List(f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	query := strings.ToLower(f.Query)
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch f.SortBy {
		case "price_asc":
			return out[i].Price < out[j].Price
		case "price_desc":
			return out[i].Price > out[j].Price
		case "name_asc":
			return out[i].Name < out[j].Name
		default: // newest
			return out[i].ID > out[j].ID
		}
	})
	return out
}

// ByID looks up a single product.
func ByID(id int) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories returns the distinct categories in catalog order.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
