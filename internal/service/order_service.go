package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"krishiconnect/internal/model"
	"krishiconnect/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)

// OrderService defines order ledger operations
type OrderService interface {
	PlaceOrder(ctx context.Context, buyerID int64, req model.CreateOrderRequest) (*model.Order, error)
	ListMine(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status *string) (*model.Order, error)
}

type orderService struct {
	repo   repository.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(repo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &orderService{repo: repo, logger: logger}
}

// PlaceOrder records a checkout. The stored total is always the sum of the
// items; a submitted total that disagrees is rejected.
func (s *orderService) PlaceOrder(ctx context.Context, buyerID int64, req model.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, it := range req.Items {
		item := model.OrderItem{
			Name:     strings.TrimSpace(it.Name),
			Price:    it.Price,
			Quantity: it.Quantity,
			Emoji:    it.Emoji,
		}
		if it.ProductID != nil {
			id := *it.ProductID
			item.ProductID = &id
		}
		switch {
		case item.Name == "":
			return nil, invalid("items", fmt.Sprintf("Item %d has no name", i+1))
		case item.Quantity <= 0:
			return nil, invalid("items", fmt.Sprintf("Quantity for %s must be at least 1", item.Name))
		case !item.Price.IsPositive():
			return nil, invalid("items", fmt.Sprintf("Price for %s must be greater than 0", item.Name))
		case !model.HasMoneyPrecision(item.Price):
			return nil, invalid("items", fmt.Sprintf("Price for %s can have at most 2 decimal places", item.Name))
		}
		items[i] = item
	}

	total := model.SumItems(items)
	if req.Total != nil && !req.Total.Equal(total) {
		return nil, invalid("total", "Order total does not match items")
	}

	order := &model.Order{
		BuyerID: buyerID,
		Items:   items,
		Total:   total,
		Status:  model.OrderStatusProcessing,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		var shortage *repository.StockShortageError
		if errors.As(err, &shortage) {
			return nil, &InsufficientStockError{ProductID: shortage.ProductID, Name: shortage.Name, Requested: shortage.Requested}
		}
		return nil, fmt.Errorf("failed to create order in repo: %w", err)
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("buyer_id", buyerID),
		zap.Int("lines", len(items)),
		zap.String("total", total.StringFixed(2)))
	return order, nil
}

func (s *orderService) ListMine(ctx context.Context, buyerID int64) ([]model.Order, error) {
	orders, err := s.repo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer orders from repo: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders from repo: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the order's status. Any status may follow any other;
// a nil or empty status leaves the order unchanged.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status *string) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find order for update: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if status == nil || *status == "" {
		return order, nil
	}
	if !model.IsValidOrderStatus(*status) {
		return nil, invalid("status", "Status must be Processing, Confirmed, Shipped, Delivered or Cancelled")
	}

	order.Status = *status
	if err := s.repo.UpdateStatus(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status in repo: %w", err)
	}
	return order, nil
}
