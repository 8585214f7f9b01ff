package main

import (
	"context"

	"github.com/nikolayk812/storefront-demo/internal/checkout"
	"github.com/spf13/cobra"
)

var (
	customerName  string
	customerPhone string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Hand the cart over to payment or to a WhatsApp order message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return a.controller.Checkout(ctx, checkout.Reference{
				CustomerName:  customerName,
				CustomerPhone: customerPhone,
			})
		})
	},
}

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Show the payment summary of the persisted cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			path := a.cfg.Checkout.PaymentPath
			if path == "" {
				path = checkout.DefaultPaymentPath
			}
			nav := &terminalNavigator{app: a}
			return nav.Navigate(ctx, path)
		})
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&customerName, "name", "", "customer name")
	checkoutCmd.Flags().StringVar(&customerPhone, "phone", "", "customer phone")
}
