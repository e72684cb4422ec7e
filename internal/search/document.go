package search

import (
	"regexp"
	"strings"
	"time"

	"storefront/internal/domain"
)

// ProductDocument is the flat shape indexed into the search service.
type ProductDocument struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	SalePrice    *float64  `json:"sale_price,omitempty"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	ViewCount    int64     `json:"view_count"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewProductDocument flattens a product (and its category name and average
// rating, looked up by the caller) into an indexable document.
func NewProductDocument(p *domain.Product, categoryName string, rating float64) ProductDocument {
	return ProductDocument{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         Slugify(p.Name),
		Description:  p.Description,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		IsFeatured:   p.IsFeatured,
		ViewCount:    p.ViewCount,
		Rating:       rating,
		CreatedAt:    p.CreatedAt,
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses runs of non-alphanumerics into single
// hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
