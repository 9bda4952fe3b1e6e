package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/session"
	"github.com/mochacli/mocha/internal/utils"
)

// storesCmd lists pickup stores and optionally selects one for later
// commands.
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List pickup stores and select one",
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, _ := cmd.Flags().GetString("search")
		selectID, _ := cmd.Flags().GetString("select")

		client, sess, err := newClient()
		if err != nil {
			return err
		}
		stores, err := client.Stores(keyword)
		if err != nil {
			return err
		}
		if len(stores) == 0 {
			fmt.Println("No stores found.")
			return nil
		}

		if selectID != "" {
			for _, s := range stores {
				if s.ID != selectID {
					continue
				}
				sess.StoreID, sess.StoreName = s.ID, s.Name
				if err := session.Save(sess); err != nil {
					return err
				}
				utils.Log.Info("Selected store ", s.Name, " (", s.ID, ")")
				return nil
			}
			return fmt.Errorf("store id %s is not in the returned list", selectID)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tADDRESS\tOPEN\t")
		for _, s := range stores {
			open := "yes"
			if !s.Open {
				open = "no"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", s.ID, s.Name, utils.Truncate(s.Address, 48), open)
		}
		w.Flush()
		if sess.StoreID != "" {
			fmt.Printf("\nCurrent store: %s (%s)\n", sess.StoreName, sess.StoreID)
		}
		return nil
	},
}

func init() {
	storesCmd.Flags().StringP("search", "q", "", "Keyword to filter stores by name or address")
	storesCmd.Flags().String("select", "", "Store id to remember for later commands")
	rootCmd.AddCommand(storesCmd)
}
