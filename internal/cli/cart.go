package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nourshop/storefront/pkg/cart"
)

func newCartCmd() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	var (
		addName  string
		addPrice float64
		addImage string
	)

	addCmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart (repeat to increase quantity)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product := cart.Product{
				ID:        args[0],
				Name:      addName,
				UnitPrice: addPrice,
				ImageRef:  addImage,
			}
			if err := current.carts.Add(cmd.Context(), product); err != nil {
				return warnIfUnpersisted(cmd, err, "item added")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", product.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addName, "name", "", "product name")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "unit price")
	addCmd.Flags().StringVar(&addImage, "image", "", "product image reference")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("price")

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.carts.Remove(cmd.Context(), args[0]); err != nil {
				return warnIfUnpersisted(cmd, err, "item removed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be an integer: %q", args[1])
			}
			if err := current.carts.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
				return warnIfUnpersisted(cmd, err, "quantity updated")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "set %s to %d\n", args[0], quantity)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.carts.Sync(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: showing possibly stale cart")
			}

			lines := current.carts.Lines()
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE\tSUBTOTAL")
			for _, line := range lines {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n",
					line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
			}
			fmt.Fprintf(w, "\t\t%d\t\t%.2f\n", current.carts.TotalItems(), current.carts.TotalPrice())
			return w.Flush()
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the active cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.carts.Clear(cmd.Context()); err != nil {
				return warnIfUnpersisted(cmd, err, "cart cleared")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return nil
		},
	}

	cartCmd.AddCommand(addCmd, removeCmd, setCmd, showCmd, clearCmd)
	return cartCmd
}

// warnIfUnpersisted reports a storage fault without failing the command: the
// in-memory mutation went through, it just will not survive this run.
func warnIfUnpersisted(cmd *cobra.Command, err error, action string) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s, but not persisted: %v\n", action, err)
	return nil
}
