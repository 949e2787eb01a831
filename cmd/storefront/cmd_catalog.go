package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yashrajoria/storefront-client/models"
	"github.com/yashrajoria/storefront-client/ui"
)

var (
	filterCategory string
	filterSearch   string
	filterMin      float64
	filterMax      float64
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List catalog items",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := models.ItemFilter{Category: filterCategory, Search: filterSearch}
		if cmd.Flags().Changed("min-price") {
			filter.MinPrice = &filterMin
		}
		if cmd.Flags().Changed("max-price") {
			filter.MaxPrice = &filterMax
		}

		items, err := shell.Catalog.ListItems(cmd.Context(), filter)
		if err != nil {
			return reportAPIError(cmd.Context(), err, "Failed to fetch items")
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer tw.Flush()
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
		for _, it := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", it.ID, it.Name, it.Category, ui.FormatCurrency(it.Price), it.Stock)
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := shell.Catalog.Categories(cmd.Context())
		if err != nil {
			return reportAPIError(cmd.Context(), err, "Failed to fetch categories")
		}
		for _, c := range categories {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	itemsCmd.Flags().StringVar(&filterCategory, "category", "", "Only items in this category")
	itemsCmd.Flags().StringVar(&filterSearch, "search", "", "Match name or description")
	itemsCmd.Flags().Float64Var(&filterMin, "min-price", 0, "Minimum price")
	itemsCmd.Flags().Float64Var(&filterMax, "max-price", 0, "Maximum price")
}
