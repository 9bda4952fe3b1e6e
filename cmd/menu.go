package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/menu"
)

// menuCmd prints the menu board of the selected store.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the menu of the selected store",
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryFilter, _ := cmd.Flags().GetString("category")
		availableOnly, _ := cmd.Flags().GetBool("available")

		client, sess, err := newClient()
		if err != nil {
			return err
		}
		storeID := currentStore(sess)
		if storeID == "" {
			return errors.New("no store selected: run `mocha stores --select <id>` first")
		}

		body, err := client.Menu(storeID)
		if err != nil {
			return err
		}
		categories := menu.ParseBoard(body)
		if len(categories) == 0 {
			fmt.Println("The menu is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tITEM\tPRICE\tCATEGORY\tSTATUS\t")
		shown := 0
		for _, cat := range categories {
			if categoryFilter != "" && !strings.Contains(strings.ToLower(cat.Name), strings.ToLower(categoryFilter)) {
				continue
			}
			for _, it := range cat.Items {
				if availableOnly && !it.Available {
					continue
				}
				status := ""
				if !it.Available {
					status = "SOLD OUT"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", it.SpuID, utils.Truncate(it.Name, 40), fmtPrice(it.Price, it.HasPrice), cat.Name, status)
				shown++
			}
		}
		w.Flush()
		if shown == 0 {
			fmt.Println("Nothing matched the filters.")
		}
		utils.Log.Debug("Rendered ", shown, " menu items for store ", storeID)
		return nil
	},
}

func init() {
	menuCmd.Flags().StringP("category", "c", "", "Only show categories whose name contains this")
	menuCmd.Flags().BoolP("available", "a", false, "Hide sold out items")
	rootCmd.AddCommand(menuCmd)
}
