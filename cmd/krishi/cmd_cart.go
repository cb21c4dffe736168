package main

import (
	"fmt"

	"krishiconnect/internal/model"

	"github.com/spf13/cobra"
)

func (a *app) printCart() {
	c := a.state.Cart
	if c.IsEmpty() {
		fmt.Fprintln(a.out, a.t("cart_empty"))
		return
	}
	for _, l := range c.Lines {
		name := l.Name
		if n, ok := l.Names[a.state.Language]; ok && n != "" {
			name = n
		}
		fmt.Fprintf(a.out, "#%d %s %s  %d x ₹%s = ₹%s\n",
			l.ProductID, l.Emoji, name, l.Quantity, l.Price.StringFixed(2), l.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(a.out, "%s: ₹%s (%d)\n", a.t("total"), c.Total().StringFixed(2), c.Count())
}

func (a *app) cartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.printCart()
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			p, err := a.api.GetProduct(ctx, id)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.state.AddToCart(*p)
			a.printCart()
			return nil
		},
	}

	step := func(use, short string, delta int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <product-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				if err := a.state.ChangeQuantity(id, delta); err != nil {
					return err
				}
				a.printCart()
				return nil
			},
		}
	}

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Drop a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a.state.RemoveFromCart(id)
			a.printCart()
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.state.ClearCart()
			a.printCart()
			return nil
		},
	}

	cartCmd.AddCommand(
		addCmd,
		step("inc", "Add one more unit", 1),
		step("dec", "Take away one unit", -1),
		removeCmd,
		clearCmd,
	)
	return cartCmd
}

func (a *app) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			req, err := a.state.CheckoutRequest()
			if err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			order, err := a.api.PlaceOrder(ctx, req)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.state.ClearCart()
			a.printOrders([]model.Order{*order})
			a.say(cmd, "voice.order_placed")
			return nil
		},
	}
}
