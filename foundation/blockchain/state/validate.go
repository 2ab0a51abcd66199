package state

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/hashicorp/go-multierror"
)

// IsChainValid walks the chain from the first block after genesis and checks
// every stored hash still matches the block data and every block links to
// the hash of its parent. It stops at the first violation. Transaction
// signatures are not checked again.
func (s *State) IsChainValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := 1; i < len(s.blocks); i++ {
		currentBlock := s.blocks[i]
		previousBlock := s.blocks[i-1]

		if !currentBlock.IsSealed() {
			return false
		}

		if currentBlock.Header.PrevBlockHash != previousBlock.Hash {
			return false
		}
	}

	return true
}

// ValidateChain performs a full audit of the chain and reports every
// violation found. Beyond what IsChainValid checks it verifies the genesis
// block, block numbering, timestamps and the validity of every recorded
// transaction.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs error

	gen := s.blocks[0]
	if gen.Header.Number != 0 || gen.Header.PrevBlockHash != database.GenesisPrevHash || !gen.IsSealed() {
		errs = multierror.Append(errs, fmt.Errorf("blk[0]: genesis block has been modified"))
	}

	for i := 1; i < len(s.blocks); i++ {
		block := s.blocks[i]

		if err := block.ValidateBlock(s.blocks[i-1]); err != nil {
			errs = multierror.Append(errs, err)
		}

		for j, tx := range block.Trans {
			if err := tx.Validate(); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("blk[%d]: tx[%d]: %w", block.Header.Number, j, err))
			}
		}
	}

	return errs
}
