package repository

import (
	"context"
	"errors"
	"fmt"

	"krishiconnect/internal/model"

	"github.com/jackc/pgx/v5"
)

// StockShortageError is returned by OrderRepository.Create when a line asks for
// more than the product has in stock, or the product no longer exists.
type StockShortageError struct {
	ProductID int64
	Name      string
	Requested int
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d", e.ProductID, e.Name, e.Requested)
}

// OrderRepository defines operations for the order ledger
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, order *model.Order) error
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create stores the order and its items and takes the ordered quantities out of
// stock, all in one transaction. Nothing is written if any line is short.
func (r *orderRepository) Create(ctx context.Context, o *model.Order) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (buyer_id, total, status) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		o.BuyerID, o.Total, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, item := range o.Items {
		if item.ProductID != nil {
			var remaining int
			err = tx.QueryRow(ctx,
				`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1 RETURNING stock`,
				item.Quantity, *item.ProductID,
			).Scan(&remaining)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					err = &StockShortageError{ProductID: *item.ProductID, Name: item.Name, Requested: item.Quantity}
					return err
				}
				return fmt.Errorf("failed to reserve stock for product %d: %w", *item.ProductID, err)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, line_no, product_id, name, price, quantity, emoji)
             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.ID, i, item.ProductID, item.Name, item.Price, item.Quantity, item.Emoji,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// FindByID retrieves an order with its items
func (r *orderRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	o := &model.Order{}
	err := r.db.QueryRow(ctx,
		`SELECT id, buyer_id, total, status, created_at, updated_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.BuyerID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	orders := []model.Order{*o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// FindByBuyer lists a buyer's orders, newest first
func (r *orderRepository) FindByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, buyer_id, total, status, created_at, updated_at
         FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC, id DESC`, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by buyer: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll lists every order, newest first, with the buyer's name and phone
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT o.id, o.buyer_id, u.name, u.phone, o.total, o.status, o.created_at, o.updated_at
         FROM orders o JOIN users u ON o.buyer_id = u.id
         ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.BuyerName, &o.BuyerPhone, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating all order rows: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus persists o.Status
func (r *orderRepository) UpdateStatus(ctx context.Context, o *model.Order) error {
	err := r.db.QueryRow(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 RETURNING updated_at`, o.Status, o.ID,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// attachItems loads the items of all orders with one query
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []model.OrderItem{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT order_id, product_id, name, price, quantity, emoji
         FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item model.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity, &item.Emoji); err != nil {
			return fmt.Errorf("failed to scan order item row: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order item rows: %w", err)
	}
	return nil
}
