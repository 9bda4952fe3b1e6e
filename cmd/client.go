package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mochacli/mocha/internal/session"
	"github.com/mochacli/mocha/internal/utils"
	"github.com/mochacli/mocha/pkg/storage"
	"github.com/mochacli/mocha/pkg/storeapi"
)

// newClient assembles the API client from config, session and the global
// proxy flag.
func newClient() (*storeapi.Client, session.Session, error) {
	sess, err := session.EnsureDeviceID()
	if err != nil {
		return nil, session.Session{}, err
	}
	if proxy, _ := rootCmd.PersistentFlags().GetString("proxy"); proxy != "" {
		if err := storeapi.SetupProxy(proxy); err != nil {
			return nil, sess, fmt.Errorf("invalid proxy: %v", err)
		}
	}
	client, err := storeapi.New(viper.GetString("api.base_url"), viper.GetString("api.token"), sess.DeviceID)
	if err != nil {
		return nil, sess, err
	}
	return client, sess, nil
}

// currentStore resolves the effective store id: the --store flag beats the
// session's selected store.
func currentStore(sess session.Session) string {
	if flag, _ := rootCmd.PersistentFlags().GetString("store"); flag != "" {
		return flag
	}
	return sess.StoreID
}

func openDB(cmd *cobra.Command) (*storage.DB, error) {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	abs, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(abs)
}

func fmtPrice(p float64, has bool) string {
	if !has {
		return "-"
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
