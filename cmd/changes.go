package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/storage"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent menu changes (default 50)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		flagPath, _ := cmd.Flags().GetString("dbpath")
		limit, _ := cmd.Flags().GetInt("limit")
		stats, _ := cmd.Flags().GetBool("stats")
		dbPath, err := utils.GetAbsDBPath(flagPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("database not found: %s (run `mocha watch` first)", dbPath)
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if stats {
			perStore, err := db.Stats(context.Background())
			if err != nil {
				return err
			}
			for _, s := range perStore {
				fmt.Printf("%s  %d items tracked, %d available\n", s.StoreID, s.ItemCount, s.AvailableCount)
			}
			return nil
		}

		changes, err := db.ListRecentMenuChanges(context.Background(), limit)
		if err != nil {
			return err
		}
		for _, c := range changes {
			ts := c.OccurredAt.Format("2006-01-02 15:04:05")
			line := fmt.Sprintf("%s  %-7s  %s  %s (%s)", ts, c.ChangeType, c.StoreID, c.Name, c.SpuID)
			if c.Detail != "" {
				line += "  " + c.Detail
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changesCmd)
	changesCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: mocha.sqlite in CWD)")
	changesCmd.Flags().Int("limit", 50, "Number of recent changes to show")
	changesCmd.Flags().Bool("stats", false, "Show per-store snapshot stats instead")
}
