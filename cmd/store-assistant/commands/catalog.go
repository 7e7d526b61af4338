package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yourusername/store-assistant/internal/usecase"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the loaded products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			products := a.Products.List(limit)
			currency := a.Config.Catalog.Currency

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tCATEGORY\tPRICE\tSTOCK\tLOCATION")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s%s\t%s\t%s\n",
					p.Position+1, p.Name, p.Category, currency, usecase.FormatPrice(p.Price), p.Stock.Label(), p.Aisle())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d products from %s\n", len(products), a.Products.Count(), a.Products.Source())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n products (0 shows all)")
	return cmd
}
