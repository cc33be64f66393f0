package command

import (
	"github.com/spf13/cobra"

	"github.com/tidepool-org/dosing/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long:  "The serve command starts the recommendation API and blocks until interrupted",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The service keeps LOG_LEVEL from its environment unless the flag is set
		if cmd.Flags().Changed("log-level") {
			return rootCmd.PersistentPreRunE(cmd, args)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		api.MainLoop()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
