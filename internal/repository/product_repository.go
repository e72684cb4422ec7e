package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCategoryMissing = errors.New("referenced category does not exist")
)

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	CategoryID *int64
	Status     string
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error)
	IncrementViewCount(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, short_description, price, sale_price, sku,
	stock_quantity, category_id, featured_image, gallery, status, is_featured,
	meta_title, meta_description, view_count, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	product := &domain.Product{}
	var gallery []byte
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.ShortDescription,
		&product.Price,
		&product.SalePrice,
		&product.SKU,
		&product.StockQuantity,
		&product.CategoryID,
		&product.FeaturedImage,
		&gallery,
		&product.Status,
		&product.IsFeatured,
		&product.MetaTitle,
		&product.MetaDescription,
		&product.ViewCount,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(gallery) > 0 {
		if err := json.Unmarshal(gallery, &product.Gallery); err != nil {
			return nil, fmt.Errorf("failed to decode gallery: %w", err)
		}
	}
	return product, nil
}

func encodeGallery(gallery []string) ([]byte, error) {
	if gallery == nil {
		gallery = []string{}
	}
	return json.Marshal(gallery)
}

// Create inserts a new product and fills in the generated identifier. A
// foreign key rejection on category_id maps to ErrCategoryMissing.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	gallery, err := encodeGallery(product.Gallery)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}

	query := `
		INSERT INTO products (name, description, short_description, price, sale_price, sku,
			stock_quantity, category_id, featured_image, gallery, status, is_featured,
			meta_title, meta_description, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	err = r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.ShortDescription,
		product.Price,
		product.SalePrice,
		product.SKU,
		product.StockQuantity,
		product.CategoryID,
		product.FeaturedImage,
		gallery,
		product.Status,
		product.IsFeatured,
		product.MetaTitle,
		product.MetaDescription,
		product.ViewCount,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryMissing
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites the stored record with the given product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	gallery, err := encodeGallery(product.Gallery)
	if err != nil {
		return fmt.Errorf("failed to encode gallery: %w", err)
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, short_description = $4, price = $5, sale_price = $6,
		    sku = $7, stock_quantity = $8, category_id = $9, featured_image = $10,
		    gallery = $11, status = $12, is_featured = $13, meta_title = $14,
		    meta_description = $15, updated_at = $16
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.ShortDescription,
		product.Price,
		product.SalePrice,
		product.SKU,
		product.StockQuantity,
		product.CategoryID,
		product.FeaturedImage,
		gallery,
		product.Status,
		product.IsFeatured,
		product.MetaTitle,
		product.MetaDescription,
		product.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryMissing
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves products with optional filtering, pagination, and sorting
func (r *productRepository) List(ctx context.Context, filter ProductFilter, page, pageSize int, sortBy string, sortOrder SortOrder) ([]*domain.Product, int, error) {
	// Whitelist sort columns to keep identifiers out of user control
	validSortFields := map[string]bool{
		"name":           true,
		"price":          true,
		"created_at":     true,
		"stock_quantity": true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != SortOrderAsc && sortOrder != SortOrderDesc {
		sortOrder = SortOrderDesc
	}

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortBy, sortOrder, argIndex, argIndex+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// Search searches for products by name or description with pagination. This
// is the relational fallback; the search index service is the primary path.
func (r *productRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	if strings.TrimSpace(query) == "" {
		return r.List(ctx, ProductFilter{}, page, pageSize, "created_at", SortOrderDesc)
	}

	searchPattern := "%" + query + "%"

	countQuery := `
		SELECT COUNT(*)
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
	`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, searchPattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	offset := (page - 1) * pageSize

	searchQuery := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, searchQuery, searchPattern, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating search results: %w", err)
	}

	return products, total, nil
}

// IncrementViewCount bumps the product view counter
func (r *productRepository) IncrementViewCount(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
