package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Verify a signed transaction read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) error {
	r := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var signedTx database.SignedTx
	if err := json.Unmarshal(data, &signedTx); err != nil {
		return fmt.Errorf("decoding transaction: %w", err)
	}

	if err := signedTx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "valid:", signedTx)
	return nil
}
