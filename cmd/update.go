package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ddoupal/IPMonitor/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		return update.Check(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
