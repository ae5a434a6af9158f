package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nourshop/storefront/pkg/api"
)

func newOrderCmd() *cobra.Command {
	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Place and inspect orders",
	}

	var (
		orderEmail   string
		orderPhone   string
		orderPayment string
	)

	placeCmd := &cobra.Command{
		Use:   "place",
		Short: "Submit the active cart as an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			details := api.CustomerDetails{Email: orderEmail, Phone: orderPhone}
			if details.Email == "" {
				if identity, ok := current.sessions.Current(); ok {
					details.Email = identity.Email
				}
			}

			order, err := current.checkout.PlaceOrder(cmd.Context(), details, api.PaymentMethod(orderPayment))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %s accepted, total %.2f\n", order.ID, order.TotalAmount)
			return nil
		},
	}
	placeCmd.Flags().StringVar(&orderEmail, "email", "", "contact email (defaults to the account email)")
	placeCmd.Flags().StringVar(&orderPhone, "phone", "", "contact phone")
	placeCmd.Flags().StringVar(&orderPayment, "payment", string(api.PaymentCashOnDelivery),
		"payment method: cash_on_delivery or credit_card")
	_ = placeCmd.MarkFlagRequired("phone")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := current.client.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd, orders)
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "List every order (staff only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := current.client.Orders(cmd.Context())
			if err != nil {
				return err
			}
			return printOrders(cmd, orders)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <order-id> <Pending|Shipped|Completed>",
		Short: "Update an order's status (staff only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.client.UpdateOrderStatus(cmd.Context(), args[0], api.OrderStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	orderCmd.AddCommand(placeCmd, listCmd, allCmd, statusCmd)
	return orderCmd
}

func printOrders(cmd *cobra.Command, orders []api.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no orders")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
	for _, order := range orders {
		items := 0
		for _, line := range order.Items {
			items += line.Quantity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
			order.ID, order.CreatedAt.Format("2006-01-02"), order.Status, items, order.TotalAmount)
	}
	return w.Flush()
}
