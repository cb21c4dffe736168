package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Order is a buyer's checkout. Items are frozen copies taken at checkout time,
// so later product edits never change a past order.
type Order struct {
	ID         int64           `json:"id"`
	BuyerID    int64           `json:"buyer_id"`
	BuyerName  string          `json:"buyer_name,omitempty"`  // filled by the all-orders listing
	BuyerPhone string          `json:"buyer_phone,omitempty"` // filled by the all-orders listing
	Items      []OrderItem     `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ProductID *int64          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Emoji     string          `json:"emoji,omitempty"`
}

// LineTotal is price x quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CreateOrderRequest carries the cart snapshot submitted at checkout.
// Total is optional; when present it must equal the sum of the items.
type CreateOrderRequest struct {
	Items []OrderItem      `json:"items"`
	Total *decimal.Decimal `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status *string `json:"status"`
}

// SumItems returns the sum of price x quantity over items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
