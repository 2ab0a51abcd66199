// Package mempool maintains the pool of transactions waiting to be mined
// into a block.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the ordered set of pending transactions. Transactions
// are kept in the order they were accepted and that is the order they are
// recorded in the next block.
type Mempool struct {
	pool []database.BlockTx
	mu   sync.RWMutex
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// CountUser returns the number of user submitted transactions in the pool.
func (mp *Mempool) CountUser() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var n int
	for _, tx := range mp.pool {
		if !tx.IsSystem() {
			n++
		}
	}

	return n
}

// Add appends a transaction to the end of the pool and returns the new
// size of the pool.
func (mp *Mempool) Add(tx database.BlockTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx.Clone())

	return len(mp.pool)
}

// Snapshot returns a copy of every transaction currently in the pool. The
// snapshot is what a mining operation seals into a block.
func (mp *Mempool) Snapshot() []database.BlockTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.BlockTx, len(mp.pool))
	for i, tx := range mp.pool {
		trans[i] = tx.Clone()
	}

	return trans
}

// Reseed removes the first n transactions, which have been mined, and puts
// the specified transactions in front of whatever was added since the
// snapshot was taken.
func (mp *Mempool) Reseed(n int, trans ...database.BlockTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if n > len(mp.pool) {
		n = len(mp.pool)
	}

	pool := make([]database.BlockTx, 0, len(trans)+len(mp.pool)-n)
	pool = append(pool, trans...)
	pool = append(pool, mp.pool[n:]...)

	mp.pool = pool
}
