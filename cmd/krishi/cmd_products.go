package main

import (
	"fmt"
	"io"

	"krishiconnect/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) printProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "-")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "#%d %s %s  ₹%s/%s  %s: %d  %s  %s\n",
			p.ID, p.Emoji, p.DisplayName(a.state.Language), p.Price.StringFixed(2), p.Unit,
			a.t("quantity"), p.Stock, p.Quality, p.Location)
	}
}

func (a *app) productsCmd() *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage products",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every product",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			products, err := a.api.ListProducts(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printProducts(a.out, products)
			return nil
		},
	}

	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own products",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			products, err := a.api.MyProducts(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printProducts(a.out, products)
			return nil
		},
	}

	var (
		addReq      model.CreateProductRequest
		addPrice    string
		addStock    int
		addNames    map[string]string
		updPrice    string
		updStock    int
		updQuality  string
		updName     string
		updLocation string
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "List a new product (farmers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			price, err := decimal.NewFromString(addPrice)
			if err != nil {
				return fmt.Errorf("invalid price %q", addPrice)
			}
			addReq.Price = &price
			addReq.Stock = &addStock
			addReq.Names = addNames

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			p, err := a.api.CreateProduct(ctx, addReq)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printProducts(a.out, []model.Product{*p})
			a.say(cmd, "voice.product_added")
			return nil
		},
	}
	af := addCmd.Flags()
	af.StringVar(&addReq.Name, "name", "", "Product name")
	af.StringToStringVar(&addNames, "names", nil, "Localized names, e.g. hi=गेहूं,pa=ਕਣਕ")
	af.StringVar(&addPrice, "price", "", "Price per unit")
	af.IntVar(&addStock, "stock", 0, "Units in stock")
	af.StringVar(&addReq.Unit, "unit", "", "Unit (default quintal)")
	af.StringVar(&addReq.Quality, "quality", "", "Premium, A Grade, B Grade or Fresh")
	af.StringVar(&addReq.Emoji, "emoji", "", "Display emoji")
	af.StringVar(&addReq.Location, "location", "", "Location (default: your own)")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("price")
	_ = addCmd.MarkFlagRequired("stock")

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change one of your products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req model.UpdateProductRequest
			flags := cmd.Flags()
			if flags.Changed("price") {
				price, err := decimal.NewFromString(updPrice)
				if err != nil {
					return fmt.Errorf("invalid price %q", updPrice)
				}
				req.Price = &price
			}
			if flags.Changed("stock") {
				req.Stock = &updStock
			}
			if flags.Changed("quality") {
				req.Quality = &updQuality
			}
			if flags.Changed("name") {
				req.Name = &updName
			}
			if flags.Changed("location") {
				req.Location = &updLocation
			}

			ctx, cancel := a.ctx(cmd)
			defer cancel()
			p, err := a.api.UpdateProduct(ctx, id, req)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printProducts(a.out, []model.Product{*p})
			return nil
		},
	}
	uf := updateCmd.Flags()
	uf.StringVar(&updPrice, "price", "", "New price")
	uf.IntVar(&updStock, "stock", 0, "New stock")
	uf.StringVar(&updQuality, "quality", "", "New quality")
	uf.StringVar(&updName, "name", "", "New name")
	uf.StringVar(&updLocation, "location", "", "New location")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove one of your products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			if err := a.api.DeleteProduct(ctx, id); err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintf(a.out, "#%d removed\n", id)
			a.say(cmd, "voice.product_removed")
			return nil
		},
	}

	productsCmd.AddCommand(listCmd, mineCmd, addCmd, updateCmd, deleteCmd)
	return productsCmd
}
