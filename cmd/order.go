package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/tui"
	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/menu"
	"github.com/mochacli/mocha/pkg/picker"
	"github.com/mochacli/mocha/pkg/storage"
	"github.com/mochacli/mocha/pkg/storeapi"
)

// orderCmd resolves an item, lets the user pick a variant stage by stage,
// and submits the order.
var orderCmd = &cobra.Command{
	Use:   "order <spuId>",
	Short: "Pick a variant of an item and place a pickup order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, _ := cmd.Flags().GetInt("qty")
		skuFlag, _ := cmd.Flags().GetString("sku")
		remark, _ := cmd.Flags().GetString("remark")

		client, sess, err := newClient()
		if err != nil {
			return err
		}
		storeID := currentStore(sess)
		if storeID == "" {
			return errors.New("no store selected: run `mocha stores --select <id>` first")
		}

		envelope, err := client.ItemDetail(storeID, args[0])
		if err != nil {
			return err
		}
		detail := menu.NormalizeDetail(envelope)
		options := menu.BuildOptions(detail)
		name := detail.Name()
		if name == "" {
			name = args[0]
		}
		if len(options) == 0 {
			fmt.Printf("%s has no sellable variants right now.\n", name)
			return nil
		}

		var chosen picker.Resolved
		if skuFlag != "" {
			found := false
			for _, o := range options {
				if o.SkuID != skuFlag {
					continue
				}
				chosen = picker.Resolved{
					SkuID:       o.SkuID,
					Name:        o.Name,
					Price:       o.Price,
					HasPrice:    o.HasPrice,
					VariantText: o.VariantText,
					SpecPairs:   o.SpecPairs,
					AttrIDs:     o.AttrIDs,
					Qty:         qty,
				}
				found = true
				break
			}
			if !found {
				return fmt.Errorf("sku %s is not a sellable variant of this item, try `mocha item %s`", skuFlag, args[0])
			}
		} else {
			outcome, ok, err := tui.RunPicker(options, detail.PrimarySkuID(), name, qty)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Order cancelled.")
				return nil
			}
			chosen = outcome.Resolved
			if outcome.Note != "" {
				remark = outcome.Note
			}
		}
		if chosen.Qty < 1 {
			chosen.Qty = 1
		}

		result, err := client.SubmitOrder(storeapi.OrderRequest{
			StoreID:   storeID,
			SpuID:     detail.SpuID(),
			SkuID:     chosen.SkuID,
			Qty:       chosen.Qty,
			SpecPairs: chosen.SpecPairs,
			AttrIDs:   chosen.AttrIDs,
			Remark:    remark,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Order placed: %s\n", result.OrderNo)
		if result.StatusName != "" {
			fmt.Printf("Status: %s\n", result.StatusName)
		} else if result.Status != "" {
			fmt.Printf("Status: %s\n", result.Status)
		}

		// Local history is best effort; a broken db never loses the order.
		db, err := openDB(cmd)
		if err != nil {
			utils.Log.Warn("Could not open local db: ", err)
			return nil
		}
		defer db.Close()
		rec := storage.OrderRecord{
			OrderNo:     result.OrderNo,
			StoreID:     storeID,
			SpuID:       detail.SpuID(),
			SkuID:       chosen.SkuID,
			Name:        chosen.Name,
			VariantText: chosen.VariantText,
			UnitPrice:   chosen.Price,
			HasPrice:    chosen.HasPrice,
			Qty:         chosen.Qty,
			Status:      result.Status,
		}
		if err := db.InsertOrder(context.Background(), rec); err != nil {
			utils.Log.Warn("Could not record order locally: ", err)
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().IntP("qty", "n", 1, "Quantity to order")
	orderCmd.Flags().String("sku", "", "Skip the picker and order this exact sku (see `mocha item`)")
	orderCmd.Flags().StringP("remark", "r", "", "Note for the barista")
	orderCmd.Flags().String("dbpath", "mocha.sqlite", "Path of the local sqlite database")
	rootCmd.AddCommand(orderCmd)
}
