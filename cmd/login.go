package cmd

import (
	"errors"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mochacli/mocha/internal/utils"
)

// loginCmd stores the API endpoint and token in the config file.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save the store API endpoint and access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")
		token, _ := cmd.Flags().GetString("token")
		if baseURL == "" && token == "" {
			return errors.New("nothing to save: pass --base-url and/or --token")
		}
		if baseURL != "" {
			viper.Set("api.base_url", baseURL)
		}
		if token != "" {
			viper.Set("api.token", token)
		}
		dest := viper.ConfigFileUsed()
		if err := viper.WriteConfig(); err != nil {
			home, herr := homedir.Dir()
			if herr != nil {
				return err
			}
			dest = home + "/.mocha.yaml"
			if err := viper.WriteConfigAs(dest); err != nil {
				return err
			}
		}
		utils.Log.Info("Credentials saved to ", dest)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("base-url", "u", "", "Store API base URL, e.g. https://api.example.com")
	loginCmd.Flags().StringP("token", "t", "", "Access token captured from the mobile app")
	rootCmd.AddCommand(loginCmd)
}
