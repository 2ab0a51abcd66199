package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	to    string
	value uint64
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a transfer and print the signed transaction",
	RunE:  signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&to, "to", "t", "", "Account id of the receiver.")
	signCmd.Flags().Uint64VarP(&value, "value", "v", 0, "Value to send.")
}

func signRun(cmd *cobra.Command, args []string) error {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return err
	}

	toID, err := database.ToAccountID(to)
	if err != nil {
		return fmt.Errorf("receiver: %w", err)
	}

	tx := database.NewTx(database.PublicKeyToAccountID(privateKey.PublicKey), toID, value)

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(signedTx, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
