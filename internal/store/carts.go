//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CartItem is one line in a session's cart. Product carries the joined
// catalog data for display.
type CartItem struct {
	ID           int             `json:"id"`
	SessionID    string          `json:"session_id"`
	ProductID    int             `json:"product_id"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selected_size,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Product      *Product        `json:"product,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Cart is the full cart for a session with computed totals.
type Cart struct {
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AddToCart adds a product to the session's cart, merging with an
// existing line for the same product and size.
func (s *Store) AddToCart(
	ctx context.Context,
	sessionID string,
	productID, quantity int,
	selectedSize string,
) (*CartItem, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	unitPrice := product.RetailPrice

	var itemID int
	err = s.pool.QueryRow(ctx, `
		INSERT INTO cart_items (session_id, product_id, quantity, selected_size, unit_price, total_price)
		VALUES ($1, $2, $3, nullif($4, ''), $5, $5 * $3)
		ON CONFLICT (session_id, product_id, selected_size)
		DO UPDATE SET
			quantity = cart_items.quantity + excluded.quantity,
			total_price = cart_items.unit_price * (cart_items.quantity + excluded.quantity),
			updated_at = now()
		RETURNING id`,
		sessionID, productID, quantity, selectedSize, unitPrice.StringFixed(2)).
		Scan(&itemID)
	if err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}

	return s.getCartItem(ctx, itemID)
}

const cartItemColumns = `
	ci.id, ci.session_id, ci.product_id, ci.quantity,
	coalesce(ci.selected_size, ''),
	ci.unit_price::text, ci.total_price::text,
	ci.created_at, ci.updated_at`

func scanCartItem(row pgx.Row) (CartItem, error) {
	var item CartItem
	var unitPrice, totalPrice string
	err := row.Scan(
		&item.ID, &item.SessionID, &item.ProductID, &item.Quantity,
		&item.SelectedSize,
		&unitPrice, &totalPrice,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return CartItem{}, err
	}
	if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return CartItem{}, fmt.Errorf("parsing unit price: %w", err)
	}
	if item.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
		return CartItem{}, fmt.Errorf("parsing total price: %w", err)
	}
	return item, nil
}

func (s *Store) getCartItem(ctx context.Context, itemID int) (*CartItem, error) {
	item, err := scanCartItem(s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM cart_items ci
		WHERE ci.id = $1`, cartItemColumns), itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting cart item: %w", err)
	}

	product, err := s.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	item.Product = product
	return &item, nil
}

// GetCart returns every line in the session's cart, newest first, with
// joined product data and computed totals.
func (s *Store) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s, %s
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ci.session_id = $1
		ORDER BY ci.created_at DESC`, cartItemColumns, productColumns), sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	defer rows.Close()

	cart := &Cart{Items: []CartItem{}, TotalAmount: decimal.Zero}
	for rows.Next() {
		var item CartItem
		var p Product
		var unitPrice, totalPrice, retailPrice string
		err := rows.Scan(
			&item.ID, &item.SessionID, &item.ProductID, &item.Quantity,
			&item.SelectedSize,
			&unitPrice, &totalPrice,
			&item.CreatedAt, &item.UpdatedAt,
			&p.ID, &p.Name, &p.Description,
			&p.CategoryID, &p.CategoryName,
			&p.ProductType, &p.ProductGroup,
			&p.UnitOfMeasure,
			&retailPrice,
			&p.ImageURL,
			&p.IsPopular, &p.IsActive, &p.IsPromo, &p.IsNew,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parsing unit price: %w", err)
		}
		if item.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
			return nil, fmt.Errorf("parsing total price: %w", err)
		}
		if p.RetailPrice, err = decimal.NewFromString(retailPrice); err != nil {
			return nil, fmt.Errorf("parsing retail price: %w", err)
		}
		item.Product = &p

		cart.Items = append(cart.Items, item)
		cart.TotalItems += item.Quantity
		cart.TotalAmount = cart.TotalAmount.Add(item.TotalPrice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	return cart, nil
}

// UpdateCartItemQuantity sets a new quantity and recomputes the line
// total.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, itemID, quantity int) (*CartItem, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $2,
		    total_price = unit_price * $2,
		    updated_at = now()
		WHERE id = $1`, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("updating cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.getCartItem(ctx, itemID)
}

// RemoveCartItem deletes one line from the cart.
func (s *Store) RemoveCartItem(ctx context.Context, itemID int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("removing cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCart removes every line from the session's cart.
func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}
