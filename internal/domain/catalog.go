package domain

import "time"

// Product status values
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDraft    = "draft"
)

// Product represents a product in the catalog
type Product struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	ShortDescription string    `json:"short_description" db:"short_description"`
	Price            float64   `json:"price" db:"price"`
	SalePrice        *float64  `json:"sale_price,omitempty" db:"sale_price"`
	SKU              string    `json:"sku" db:"sku"`
	StockQuantity    int       `json:"stock_quantity" db:"stock_quantity"`
	CategoryID       int64     `json:"category_id" db:"category_id"`
	FeaturedImage    string    `json:"featured_image,omitempty" db:"featured_image"`
	Gallery          []string  `json:"gallery,omitempty" db:"gallery"`
	Status           string    `json:"status" db:"status"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured"`
	MetaTitle        string    `json:"meta_title,omitempty" db:"meta_title"`
	MetaDescription  string    `json:"meta_description,omitempty" db:"meta_description"`
	ViewCount        int64     `json:"view_count" db:"view_count"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Category represents a product category. Categories form a hierarchy
// through ParentID.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image,omitempty" db:"image"`
	ParentID    *int64    `json:"parent_id,omitempty" db:"parent_id"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Review represents a customer review of a product
type Review struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Title     string    `json:"title,omitempty" db:"title"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
