package cmd

import (
	"fmt"

	"github.com/mmcloughlin/keystream/suite"
	"github.com/spf13/cobra"
)

// suitesCmd represents the suites command
var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "List available cipher suites",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range suite.Names() {
			n, _ := suite.KeyLen(name)
			fmt.Printf("%-10s%d byte key\n", name, n)
		}
	},
}

func init() {
	rootCmd.AddCommand(suitesCmd)
}
