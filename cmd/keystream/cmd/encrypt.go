package cmd

import (
	"github.com/spf13/cobra"
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a stream with a cipher profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stream("encrypt")
	},
}

func init() {
	streamFlags(encryptCmd.Flags())
	rootCmd.AddCommand(encryptCmd)
}
