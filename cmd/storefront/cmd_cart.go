package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/ui"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and change your cart",
	Long: `Cart commands act on the server cart when signed in and on the local
cart otherwise. "set" and "remove" take a cart line id when signed in and an
item id when signed out.`,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer tw.Flush()

		if !shell.Session.IsLoggedIn(ctx) {
			fmt.Fprintln(tw, "ITEM\tQTY")
			for _, line := range shell.LocalCart.Get(ctx) {
				fmt.Fprintf(tw, "%s\t%d\n", line.ItemID, line.Quantity)
			}
			return nil
		}

		cart, err := shell.Cart.GetCart(ctx)
		if err != nil {
			return reportAPIError(ctx, err, "Failed to load cart")
		}
		fmt.Fprintln(tw, "LINE\tITEM\tNAME\tQTY\tPRICE")
		for _, line := range cart.Items {
			name, price := "", ""
			if line.Item != nil {
				name, price = line.Item.Name, ui.FormatCurrency(line.Item.Price)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", line.ID, line.ItemID, name, line.Quantity, price)
		}
		fmt.Fprintf(tw, "\t\tTOTAL\t%d\t%s\n", cart.TotalQuantity(), ui.FormatCurrency(cart.Total))
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add ITEM_ID [QUANTITY]",
	Short: "Add an item",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty := 1
		if len(args) == 2 {
			var err error
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		if err := shell.AddToCart(cmd.Context(), models.ItemID(args[0]), qty); err != nil {
			return reportAPIError(cmd.Context(), err, "Failed to add item to cart")
		}
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set ID QUANTITY",
	Short: "Change a quantity; zero or less removes the line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		if !shell.Session.IsLoggedIn(ctx) {
			return shell.LocalCart.SetQuantity(ctx, models.ItemID(args[0]), qty)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cart line id %q", args[0])
		}
		if _, err := shell.Cart.UpdateItem(ctx, id, qty); err != nil {
			return reportAPIError(ctx, err, "Failed to update cart")
		}
		shell.Counter.Refresh(ctx)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !shell.Session.IsLoggedIn(ctx) {
			return shell.LocalCart.Remove(ctx, models.ItemID(args[0]))
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cart line id %q", args[0])
		}
		if err := shell.Cart.RemoveItem(ctx, id); err != nil {
			return reportAPIError(ctx, err, "Failed to remove item from cart")
		}
		shell.Counter.Refresh(ctx)
		return nil
	},
}

var cartCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of items in the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !shell.Session.IsLoggedIn(ctx) {
			fmt.Fprintln(cmd.OutOrStdout(), shell.LocalCart.Count(ctx))
			return nil
		}
		cart, err := shell.Cart.GetCart(ctx)
		if err != nil {
			return reportAPIError(ctx, err, "Failed to load cart")
		}
		fmt.Fprintln(cmd.OutOrStdout(), cart.TotalQuantity())
		return nil
	},
}

var cartMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Push the local cart to the server cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !shell.Session.IsLoggedIn(cmd.Context()) {
			return fmt.Errorf("sign in first")
		}
		printMerge(cmd, shell.Merger.Merge(cmd.Context()))
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartCountCmd, cartMergeCmd)
}
