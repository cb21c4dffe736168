package service

import (
	"context"
	"errors"
	"fmt"

	"krishiconnect/internal/cart"
	"krishiconnect/internal/model"
)

var ErrCartItemNotFound = errors.New("product is not in the cart")

// CartStore persists one cart per session
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// CartService manages the server-side cart of a buyer's login session
type CartService interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Add(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error)
	ChangeQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*cart.Cart, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, buyerID int64) (*model.Order, error)
}

type cartService struct {
	store    CartStore
	products ProductService
	orders   OrderService
}

// NewCartService creates a new CartService
func NewCartService(store CartStore, products ProductService, orders OrderService) CartService {
	return &cartService{store: store, products: products, orders: orders}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	c, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return c, nil
}

// Add snapshots the product from the catalog into the cart
func (s *cartService) Add(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(cart.FromProduct(*p))
	return c, s.save(ctx, sessionID, c)
}

func (s *cartService) ChangeQuantity(ctx context.Context, sessionID string, productID int64, delta int) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.ChangeQuantity(productID, delta) {
		return nil, ErrCartItemNotFound
	}
	return c, s.save(ctx, sessionID, c)
}

func (s *cartService) Remove(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !c.Remove(productID) {
		return c, nil
	}
	return c, s.save(ctx, sessionID, c)
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Checkout places an order for the cart contents. The cart is emptied only
// when the order was stored.
func (s *cartService) Checkout(ctx context.Context, sessionID string, buyerID int64) (*model.Order, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total := c.Total()
	order, err := s.orders.PlaceOrder(ctx, buyerID, model.CreateOrderRequest{
		Items: c.OrderItems(),
		Total: &total,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Clear(ctx, sessionID); err != nil {
		return order, err
	}
	return order, nil
}

func (s *cartService) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if err := s.store.SaveCart(ctx, sessionID, c); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
