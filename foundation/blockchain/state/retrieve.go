package state

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
)

// ErrNotFound is returned when a block number is past the end of the chain.
var ErrNotFound = errors.New("block not found")

// Chain represents a point in time copy of the ledger. This is the form
// used to display or export the ledger.
type Chain struct {
	Blocks              []database.Block   `json:"chain"`
	Difficulty          uint               `json:"difficulty"`
	PendingTransactions []database.BlockTx `json:"pending_transactions"`
	MiningReward        uint64             `json:"mining_reward"`
}

// RetrieveChain returns a copy of the full ledger.
func (s *State) RetrieveChain() Chain {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Chain{
		Blocks:              s.copyBlocks(),
		Difficulty:          s.difficulty,
		PendingTransactions: s.mempool.Snapshot(),
		MiningReward:        s.genesis.MiningReward,
	}
}

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.blocks[len(s.blocks)-1].Clone()
}

// RetrieveBlocks returns a copy of every block in the chain.
func (s *State) RetrieveBlocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyBlocks()
}

// RetrieveMempool returns a copy of the pending transactions in the order
// they will be recorded.
func (s *State) RetrieveMempool() []database.BlockTx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Snapshot()
}

// RetrieveDifficulty returns the difficulty the next block is mined at.
func (s *State) RetrieveDifficulty() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.difficulty
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlockByNumber returns a copy of the block with the specified number.
func (s *State) QueryBlockByNumber(num uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if num >= uint64(len(s.blocks)) {
		return database.Block{}, ErrNotFound
	}

	return s.blocks[num].Clone(), nil
}

// =============================================================================

// copyBlocks makes a deep copy of the chain. The caller must hold the lock.
func (s *State) copyBlocks() []database.Block {
	blocks := make([]database.Block, len(s.blocks))
	for i, block := range s.blocks {
		blocks[i] = block.Clone()
	}

	return blocks
}
