// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	BeneficiaryID database.AccountID // Account paid the reward for blocks the worker mines.
	Genesis       genesis.Genesis    // Zero value means genesis.Default.
	Clock         func() time.Time   // Nil means time.Now.
	EvHandler     EventHandler
}

// State manages the blocks, the pending transactions and the current
// difficulty of the ledger.
type State struct {
	beneficiaryID database.AccountID
	evHandler     EventHandler
	clock         func() time.Time
	genesis       genesis.Genesis

	mu         sync.RWMutex
	blocks     []database.Block
	difficulty uint
	mempool    *mempool.Mempool

	// Only one mining operation can be in flight at a time.
	miningMu sync.Mutex

	Worker Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis
	if gen == (genesis.Genesis{}) {
		gen = genesis.Default()
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,
		clock:         clock,
		genesis:       gen,
		difficulty:    gen.Difficulty,
		mempool:       mempool.New(),
	}

	state.blocks = []database.Block{state.createGenesisBlock()}

	ev("state: New: genesis: blk[%s]: difficulty[%d]: reward[%d]", state.blocks[0].Hash, gen.Difficulty, gen.MiningReward)

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start the mining operations.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.evHandler("state: Shutdown: started")
	defer s.evHandler("state: Shutdown: completed")

	// Stop all mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (s *State) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fmt.Sprintf("blocks[%d]: difficulty[%d]: pending[%d]", len(s.blocks), s.difficulty, s.mempool.Count())
}

// =============================================================================

// createGenesisBlock produces the first block of the chain. It carries the
// genesis payload instead of transactions and is not mined. The genesis
// date stamps the block when one is set.
func (s *State) createGenesisBlock() database.Block {
	timeStamp := s.now()
	if !s.genesis.Date.IsZero() {
		timeStamp = uint64(s.genesis.Date.UnixMilli())
	}

	return database.NewGenesisBlock(timeStamp, s.genesis.Payload)
}

// now returns the current time in milliseconds, the resolution blocks
// are stamped with.
func (s *State) now() uint64 {
	return uint64(s.clock().UnixMilli())
}
