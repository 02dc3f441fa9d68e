package cmd

import (
	"github.com/mmcloughlin/keystream/config"
	"github.com/mmcloughlin/keystream/log"
	"github.com/spf13/cobra"
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a key for a cipher profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return keygen()
	},
}

func init() {
	Register(keygenCmd.Flags(), profileArgs)
	rootCmd.AddCommand(keygenCmd)
}

func keygen() error {
	p, err := profileArgs.Profile()
	if err != nil {
		return err
	}
	if _, err := config.GenerateKeyFile(p.Cipher, p.KeyFile); err != nil {
		return err
	}
	l := log.ForProfile(log.NewDebug(), p.Name)
	l.With("keyfile", p.KeyFile).With("cipher", p.Cipher).Info("generated key")
	return nil
}
