package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/utils"
)

// statusCmd queries the vendor for the current state of an order.
var statusCmd = &cobra.Command{
	Use:   "status <orderNo>",
	Short: "Check the status of an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}
		res, err := client.OrderStatus(args[0])
		if err != nil {
			return err
		}
		status := res.StatusName
		if status == "" {
			status = res.Status
		}
		if status == "" {
			status = "unknown"
		}
		fmt.Printf("Order %s: %s\n", res.OrderNo, status)

		// Keep local history in sync when we have it.
		db, err := openDB(cmd)
		if err != nil {
			utils.Log.Debug("Could not open local db: ", err)
			return nil
		}
		defer db.Close()
		if res.Status != "" {
			if err := db.UpdateOrderStatus(context.Background(), res.OrderNo, res.Status); err != nil {
				utils.Log.Debug("Could not update local order status: ", err)
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().String("dbpath", "mocha.sqlite", "Path of the local sqlite database")
	rootCmd.AddCommand(statusCmd)
}
