package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/menu"
	"github.com/mochacli/mocha/pkg/storage"
)

// watchCmd snapshots the menu into the local db and reports what changed
// since the previous snapshot. Running it from cron gives a poor man's "new
// seasonal drink" alert.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Snapshot the menu and report changes since the last run",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		entries := flattenBoard(storeID, menu.ParseBoard(body))
		utils.Log.Debug("Snapshotting ", len(entries), " items for store ", storeID)

		dbPath, _ := cmd.Flags().GetString("dbpath")
		lock, err := utils.NewDBLock(dbPath)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		changes, err := db.UpsertMenuEntries(context.Background(), storeID, entries)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			fmt.Println("No menu changes since the last run.")
			return nil
		}
		for _, c := range changes {
			line := fmt.Sprintf("[%s] %s (%s)", c.ChangeType, c.Name, c.SpuID)
			if c.Detail != "" {
				line += ": " + c.Detail
			}
			fmt.Println(line)
		}
		return nil
	},
}

// flattenBoard turns the categorized board into snapshot rows, tagging each
// item with the category it was listed under.
func flattenBoard(storeID string, categories []menu.Category) []storage.MenuEntry {
	var entries []storage.MenuEntry
	for _, cat := range categories {
		for _, it := range cat.Items {
			entries = append(entries, storage.MenuEntry{
				StoreID:   storeID,
				SpuID:     it.SpuID,
				Name:      it.Name,
				Category:  cat.Name,
				Price:     it.Price,
				HasPrice:  it.HasPrice,
				Available: it.Available,
			})
		}
	}
	return entries
}

func init() {
	watchCmd.Flags().String("dbpath", "mocha.sqlite", "Path of the local sqlite database")
	rootCmd.AddCommand(watchCmd)
}
