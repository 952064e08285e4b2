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
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order with its line items.
type Order struct {
	ID          int             `json:"id"`
	OrderNumber string          `json:"order_number"`
	SessionID   string          `json:"session_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem is one line of an order, priced at order time.
type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selected_size,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// newOrderNumber generates a human-readable unique order identifier.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateOrder places an order from the session's current cart and
// clears the cart. The whole operation runs in one transaction so an
// order is never created with a half-consumed cart.
func (s *Store) CreateOrder(ctx context.Context, sessionID, notes string) (*Order, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrNotFound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderNumber := newOrderNumber()

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, session_id, status, total_amount, notes)
		VALUES ($1, $2, $3, $4, nullif($5, ''))
		RETURNING id`,
		orderNumber, sessionID, OrderStatusPending,
		cart.TotalAmount.StringFixed(2), notes).
		Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	for _, item := range cart.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, selected_size, unit_price, total_price)
			VALUES ($1, $2, $3, nullif($4, ''), $5, $6)`,
			orderID, item.ProductID, item.Quantity, item.SelectedSize,
			item.UnitPrice.StringFixed(2), item.TotalPrice.StringFixed(2))
		if err != nil {
			return nil, fmt.Errorf("adding order item: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("clearing cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return s.GetOrder(ctx, orderID)
}

// GetOrder returns an order with its items.
func (s *Store) GetOrder(ctx context.Context, orderID int) (*Order, error) {
	var o Order
	var total string
	var notes *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, order_number, session_id, status, total_amount::text, notes,
		       created_at, updated_at
		FROM orders
		WHERE id = $1`, orderID).
		Scan(&o.ID, &o.OrderNumber, &o.SessionID, &o.Status, &total, &notes,
			&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", orderID, err)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parsing order total: %w", err)
	}
	if notes != nil {
		o.Notes = *notes
	}

	items, err := s.orderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) orderItems(ctx context.Context, orderID int) ([]OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity,
		       coalesce(oi.selected_size, ''),
		       oi.unit_price::text, oi.total_price::text
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order items: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var item OrderItem
		var unitPrice, totalPrice string
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.SelectedSize, &unitPrice, &totalPrice)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parsing unit price: %w", err)
		}
		if item.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
			return nil, fmt.Errorf("parsing total price: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading order items: %w", err)
	}
	return items, nil
}

// ListOrders returns a session's orders, newest first, without items.
func (s *Store) ListOrders(ctx context.Context, sessionID string, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, order_number, session_id, status, total_amount::text, notes,
		       created_at, updated_at
		FROM orders
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		var total string
		var notes *string
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.SessionID, &o.Status, &total, &notes,
			&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parsing order total: %w", err)
		}
		if notes != nil {
			o.Notes = *notes
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}
	return orders, nil
}
