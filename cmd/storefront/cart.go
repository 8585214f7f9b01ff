package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var cartQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change the profile's cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.controller.Load(ctx, a.doc); err != nil {
				return fmt.Errorf("controller.Load: %w", err)
			}
			return a.printCart(ctx)
		})
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add NAME PRICE",
	Short: "Add an item to the cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("price[%s] is not valid: %w", args[1], err)
		}

		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.controller.AddToCart(ctx, a.doc, args[0], price, cartQuantity); err != nil {
				return err
			}
			return a.printCart(ctx)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove INDEX",
	Short: "Remove the line at INDEX (as shown by cart show)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index[%s] is not valid: %w", args[0], err)
		}

		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.controller.RemoveFromCart(ctx, a.doc, index); err != nil {
				return err
			}
			return a.printCart(ctx)
		})
	},
}

var cartQtyCmd = &cobra.Command{
	Use:   "qty NAME QUANTITY",
	Short: "Set the quantity of a line; zero removes it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity[%s] is not valid: %w", args[1], err)
		}

		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.controller.SetQuantity(ctx, a.doc, args[0], quantity); err != nil {
				return err
			}
			return a.printCart(ctx)
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return a.controller.ClearCart(ctx, a.doc)
		})
	},
}

var cartRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the HTML bound to each cart slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.controller.Load(ctx, a.doc); err != nil {
				return fmt.Errorf("controller.Load: %w", err)
			}
			a.printSlots()
			return nil
		})
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartQuantity, "qty", "q", 1, "quantity to add")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartQtyCmd, cartClearCmd, cartRenderCmd)
}

// withApp builds the page session for one command and tears it down after.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.close())
	}()

	return fn(ctx, a)
}
