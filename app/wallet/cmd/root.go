// Package cmd contains the wallet app for managing keys and signing
// transactions for the ledger.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
}

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Simple wallet for the ledger",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	if !strings.HasSuffix(accountName, nameservice.KeyExtension) {
		accountName += nameservice.KeyExtension
	}

	return filepath.Join(accountPath, accountName)
}
