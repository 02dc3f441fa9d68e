package cmd

import (
	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a stream with a cipher profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stream("decrypt")
	},
}

func init() {
	streamFlags(decryptCmd.Flags())
	rootCmd.AddCommand(decryptCmd)
}
