package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// ErrInvalidTransaction is returned when a transaction submitted for
// inclusion does not carry a valid signature from its sender.
var ErrInvalidTransaction = errors.New("invalid transaction")

// AddTransaction accepts a signed transaction for inclusion in the next
// block. The transaction is rejected if the signature doesn't verify.
// There is no balance check, any amount is accepted.
func (s *State) AddTransaction(signedTx database.SignedTx) error {
	if err := signedTx.Validate(); err != nil {
		s.evHandler("state: AddTransaction: REJECTED: tx[%s]: %s", signedTx, err)
		return fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}

	n := s.mempool.Add(database.NewBlockTx(signedTx))
	s.evHandler("state: AddTransaction: accepted: tx[%s]: pending[%d]", signedTx, n)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}
