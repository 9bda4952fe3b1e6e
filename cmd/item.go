package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/menu"
)

// itemCmd resolves one item into its currently sellable variants.
var itemCmd = &cobra.Command{
	Use:   "item [spuId]",
	Short: "Show the sellable variants of an item",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromURL, _ := cmd.Flags().GetString("from-url")

		client, sess, err := newClient()
		if err != nil {
			return err
		}

		var envelope gjson.Result
		switch {
		case fromURL != "":
			envelope, err = client.FetchSharedItem(fromURL)
		case len(args) == 1:
			envelope, err = client.ItemDetail(currentStore(sess), args[0])
		default:
			return errors.New("pass a spuId or --from-url <share link>")
		}
		if err != nil {
			return err
		}

		detail := menu.NormalizeDetail(envelope)
		options := menu.BuildOptions(detail)
		name := detail.Name()
		if name == "" {
			name = "(unnamed item)"
		}
		if len(options) == 0 {
			fmt.Printf("%s has no sellable variants right now.\n", name)
			return nil
		}

		kind := "item"
		if detail.IsCombo() {
			kind = "combo"
		}
		fmt.Printf("%s (%s, %d variants)\n\n", name, kind, len(options))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SKU\tVARIANT\tPRICE\t")
		for _, o := range options {
			variant := o.VariantText
			if variant == "" {
				variant = o.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", o.SkuID, utils.Truncate(variant, 70), fmtPrice(o.Price, o.HasPrice))
		}
		w.Flush()
		return nil
	},
}

func init() {
	itemCmd.Flags().String("from-url", "", "Resolve an item from a shared H5 page link instead of the API")
	rootCmd.AddCommand(itemCmd)
}
