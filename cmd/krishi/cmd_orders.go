package main

import (
	"fmt"
	"strings"

	"krishiconnect/internal/client"
	"krishiconnect/internal/model"

	"github.com/spf13/cobra"
)

func (a *app) printOrders(orders []model.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "-")
		return
	}
	for _, o := range orders {
		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s%s x%d", it.Emoji, it.Name, it.Quantity))
		}
		fmt.Fprintf(a.out, "#%d [%s] %s  %s: ₹%s", o.ID, o.Status, strings.Join(items, ", "), a.t("total"), o.Total.StringFixed(2))
		if o.BuyerName != "" {
			fmt.Fprintf(a.out, "  (%s %s)", o.BuyerName, o.BuyerPhone)
		}
		fmt.Fprintln(a.out)
	}
}

func (a *app) ordersCmd() *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Show and update orders",
	}

	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "Orders you placed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			orders, err := a.api.MyOrders(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printOrders(orders)
			return nil
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Every order with buyer details",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			orders, err := a.api.AllOrders(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printOrders(orders)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			order, err := a.api.UpdateOrderStatus(ctx, id, args[1])
			if err != nil {
				return a.fail(cmd, err)
			}
			a.printOrders([]model.Order{*order})
			return nil
		},
	}

	ordersCmd.AddCommand(mineCmd, allCmd, statusCmd)
	return ordersCmd
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Product count, order count and earnings (farmers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			if a.state.User.Role != model.RoleFarmer {
				return client.ErrWrongRole
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			s, err := a.api.FarmerSummary(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintf(a.out, "%s: %d\n", a.t("products"), s.Products)
			fmt.Fprintf(a.out, "%s: %d\n", a.t("orders"), s.Orders)
			fmt.Fprintf(a.out, "%s: ₹%s\n", a.t("earnings"), s.Earnings.StringFixed(2))
			return nil
		},
	}
}

func (a *app) chatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the other side of the marketplace",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			msgs, err := a.api.Messages(ctx)
			if err != nil {
				return a.fail(cmd, err)
			}
			if len(msgs) == 0 {
				fmt.Fprintln(a.out, a.t("no_messages"))
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(a.out, "%s %s: %s\n", m.Time.Local().Format("15:04"), m.Sender, m.Message)
			}
			return nil
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return a.fail(cmd, err)
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			m, err := a.api.SendMessage(ctx, strings.Join(args, " "))
			if err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintf(a.out, "%s: %s\n", m.Sender, m.Message)
			a.say(cmd, "voice.message_sent")
			return nil
		},
	}

	chatCmd.AddCommand(listCmd, sendCmd)
	return chatCmd
}
