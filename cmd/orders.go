package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/utils"
)

// ordersCmd lists the orders placed from this machine.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders placed from this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		orders, err := db.ListOrders(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIME\tORDER\tITEM\tVARIANT\tQTY\tPRICE\tSTATUS\t")
		for _, o := range orders {
			ts := ""
			if !o.CreatedAt.IsZero() {
				ts = o.CreatedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t\n",
				ts, o.OrderNo, utils.Truncate(o.Name, 24), utils.Truncate(o.VariantText, 40), o.Qty, fmtPrice(o.UnitPrice, o.HasPrice), o.Status)
		}
		w.Flush()
		return nil
	},
}

func init() {
	ordersCmd.Flags().IntP("limit", "L", 20, "How many orders to show")
	ordersCmd.Flags().String("dbpath", "mocha.sqlite", "Path of the local sqlite database")
	rootCmd.AddCommand(ordersCmd)
}
