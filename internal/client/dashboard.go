package client

import (
	"context"

	"krishiconnect/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// FarmerSummary is the headline figures of the farmer dashboard
type FarmerSummary struct {
	Products int
	Orders   int
	Earnings decimal.Decimal
}

// Summarize counts products and orders and sums the order totals
func Summarize(products []model.Product, orders []model.Order) FarmerSummary {
	earnings := decimal.Zero
	for _, o := range orders {
		earnings = earnings.Add(o.Total)
	}
	return FarmerSummary{Products: len(products), Orders: len(orders), Earnings: earnings}
}

// FarmerSummary loads the caller's products and the order ledger concurrently
func (a *API) FarmerSummary(ctx context.Context) (*FarmerSummary, error) {
	var (
		products []model.Product
		orders   []model.Order
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = a.MyProducts(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = a.AllOrders(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s := Summarize(products, orders)
	return &s, nil
}
