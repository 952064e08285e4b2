//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Product is a menu item from the catalog.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    int             `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	ProductType   string          `json:"product_type"`
	ProductGroup  string          `json:"product_group"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	ImageURL      string          `json:"image_url"`
	IsPopular     bool            `json:"is_popular"`
	IsActive      bool            `json:"is_active"`
	IsPromo       bool            `json:"is_promo"`
	IsNew         bool            `json:"is_new"`
}

// Category groups menu items.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategoryID *int
	IsPopular  *bool
	IsActive   *bool
	Search     string
	Limit      int
	Offset     int
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}

const productColumns = `
	p.id, p.name, coalesce(p.description, ''),
	p.category_id, coalesce(c.name, ''),
	coalesce(p.product_type, ''), coalesce(p.product_group, ''),
	coalesce(p.unit_of_measure, ''),
	p.retail_price::text,
	coalesce(p.image_url, ''),
	p.is_popular, p.is_active, p.is_promo, p.is_new`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var price string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description,
		&p.CategoryID, &p.CategoryName,
		&p.ProductType, &p.ProductGroup,
		&p.UnitOfMeasure,
		&price,
		&p.ImageURL,
		&p.IsPopular, &p.IsActive, &p.IsPromo, &p.IsNew,
	)
	if err != nil {
		return Product{}, err
	}
	p.RetailPrice, err = decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("parsing retail price: %w", err)
	}
	return p, nil
}

// ListProducts returns a filtered, paginated product listing. Popular
// items sort first, then by price descending, matching how the menu is
// presented to customers.
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	var conditions []string
	var args []any

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = "+addArg(*filter.CategoryID))
	}
	if filter.IsPopular != nil {
		conditions = append(conditions, "p.is_popular = "+addArg(*filter.IsPopular))
	}
	if filter.IsActive != nil {
		conditions = append(conditions, "p.is_active = "+addArg(*filter.IsActive))
	}
	if filter.Search != "" {
		placeholder := addArg("%" + filter.Search + "%")
		conditions = append(conditions,
			fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", placeholder, placeholder))
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT count(*) FROM products p WHERE " + whereClause
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE %s
		ORDER BY p.is_popular DESC, p.retail_price DESC
		LIMIT %s OFFSET %s`,
		productColumns, whereClause, addArg(limit), addArg(filter.Offset))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}

	return &ProductPage{
		Products: products,
		Total:    total,
		Page:     (filter.Offset / limit) + 1,
		PerPage:  limit,
	}, nil
}

// GetProduct returns a single product by ID.
func (s *Store) GetProduct(ctx context.Context, id int) (*Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`, productColumns)

	p, err := scanProduct(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}
	return &p, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, coalesce(description, '')
		FROM categories
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return categories, nil
}

// Candidates returns passage texts for products matching the query,
// feeding the retrieval re-ranking pool. Full-text matches come first;
// popular items pad the pool so short or vague queries still retrieve
// something useful.
func (s *Store) Candidates(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id,
		     plainto_tsquery('english', $1) q
		WHERE p.is_active
		ORDER BY
			(to_tsvector('english',
				p.name || ' ' || coalesce(p.description, '') || ' ' ||
				coalesce(c.name, '') || ' ' || coalesce(p.product_type, '')) @@ q) DESC,
			p.is_popular DESC,
			p.name
		LIMIT $2`, productColumns), query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	var passages []string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		passages = append(passages, p.Passage())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading candidates: %w", err)
	}
	return passages, nil
}

// Passage renders the product as a knowledge passage for prompt
// context. The ID appears inline so generated recommendations can cite
// it in the structured mention format.
func (p Product) Passage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s (ID: %d)\n", p.Name, p.ID)
	fmt.Fprintf(&b, "Group: %s\n", p.ProductGroup)
	fmt.Fprintf(&b, "Category: %s\n", p.CategoryName)
	fmt.Fprintf(&b, "Type: %s\n", p.ProductType)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Size: %s\n", p.UnitOfMeasure)
	fmt.Fprintf(&b, "Retail Price: $%s\n", p.RetailPrice.StringFixed(2))
	fmt.Fprintf(&b, "Promo: %s\n", yesNo(p.IsPromo))
	fmt.Fprintf(&b, "New Product: %s", yesNo(p.IsNew))
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
