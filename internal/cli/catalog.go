package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nourshop/storefront/pkg/api"
)

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and manage the product catalog",
	}

	var refresh bool
	browseCmd := &cobra.Command{
		Use:   "browse <category>",
		Short: "List a category's products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				products []api.Product
				err      error
			)
			if refresh {
				products, err = current.catalog.Refresh(cmd.Context(), args[0])
			} else {
				products, err = current.catalog.Products(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no products in this category")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tDESCRIPTION")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.Price, p.Description)
			}
			return w.Flush()
		},
	}
	browseCmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the local cache")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List the browsable categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tIMAGE")
			for _, c := range current.catalog.Categories() {
				fmt.Fprintf(w, "%s\t%s\n", c.Name, c.ImageRef)
			}
			return w.Flush()
		},
	}

	var input api.ProductInput
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product (staff only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := current.catalog.CreateProduct(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", product.Name, product.ID)
			return nil
		},
	}
	bindProductFlags(createCmd, &input)

	var updateInput api.ProductInput
	updateCmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Replace a product (staff only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := current.catalog.UpdateProduct(cmd.Context(), args[0], updateInput)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", product.ID)
			return nil
		},
	}
	bindProductFlags(updateCmd, &updateInput)

	deleteCmd := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Remove a product (staff only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := current.catalog.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	catalogCmd.AddCommand(browseCmd, categoriesCmd, createCmd, updateCmd, deleteCmd)
	return catalogCmd
}

func bindProductFlags(cmd *cobra.Command, input *api.ProductInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "product name")
	cmd.Flags().StringVar(&input.Description, "description", "", "product description")
	cmd.Flags().StringVar(&input.ImageURL, "image", "", "product image URL")
	cmd.Flags().Float64Var(&input.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&input.CategoryName, "category", "", "category name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")
}
