package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/google/uuid"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no user transactions to record.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock mines the pending transactions into a new block paying the
// reward to the configured beneficiary. This is what the worker calls, so
// a pool holding only a reward is not worth a block.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.CountUser() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	return s.MinePendingTransactions(ctx, s.beneficiaryID)
}

// MinePendingTransactions seals every pending transaction into a new block,
// appends it to the chain and reseeds the pool with the reward for the
// miner. This blocks until the POW puzzle is solved or the context is
// cancelled. A cancelled operation leaves the chain and the pool untouched.
func (s *State) MinePendingTransactions(ctx context.Context, minerID database.AccountID) (database.Block, error) {
	if !minerID.IsEncodable() {
		return database.Block{}, fmt.Errorf("miner[%q]: %w", string(minerID), database.ErrAccountEncoding)
	}

	s.miningMu.Lock()
	defer s.miningMu.Unlock()

	runID := uuid.NewString()

	s.evHandler("state: MinePendingTransactions: MINING: started: run[%s]: miner[%s]", runID, minerID)
	defer s.evHandler("state: MinePendingTransactions: MINING: completed: run[%s]", runID)

	// Capture what the new block is built from. Transactions that arrive
	// after the snapshot wait for the next block.
	s.mu.RLock()
	prevBlock := s.blocks[len(s.blocks)-1]
	difficulty := s.difficulty
	s.mu.RUnlock()

	trans := s.mempool.Snapshot()

	s.evHandler("state: MinePendingTransactions: MINING: perform POW: run[%s]: txs[%d]: difficulty[%d]", runID, len(trans), difficulty)

	block, err := database.POW(ctx, database.POWArgs{
		Difficulty: difficulty,
		PrevBlock:  prevBlock,
		TimeStamp:  s.now(),
		Trans:      trans,
		EvHandler:  s.evHandler,
	})
	if err != nil {
		s.evHandler("state: MinePendingTransactions: MINING: ERROR: run[%s]: %s", runID, err)
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MinePendingTransactions: MINING: update local state: run[%s]: blk[%d]", runID, block.Header.Number)

	s.mu.Lock()
	{
		s.blocks = append(s.blocks, block)
		s.mempool.Reseed(len(trans), database.NewRewardTx(minerID, s.genesis.MiningReward))
	}
	s.mu.Unlock()

	s.evHandler("viewer: block mined: blk[%d]: hash[%s]: txs[%d]", block.Header.Number, block.Hash, len(block.Trans))

	return block.Clone(), nil
}
