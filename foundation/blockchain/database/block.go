package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// GenesisPrevHash is the previous hash recorded by the genesis block.
const GenesisPrevHash = "0"

// MaxDifficulty is the highest difficulty that can be solved. A SHA-256
// digest only has this many hex characters.
const MaxDifficulty = 64

// Set of errors returned by the mining operation.
var (
	ErrDifficultyUnsolvable = errors.New("difficulty exceeds hash length")
	ErrNonceExhausted       = errors.New("nonce space exhausted")
	ErrUnhashable           = errors.New("block data can't be serialized")
)

// =============================================================================

// BlockHeader represents the linkage and sealing information for each block.
type BlockHeader struct {
	Number        uint64 `json:"index"`         // Position in the chain, 0 is genesis.
	TimeStamp     uint64 `json:"timestamp"`     // Milliseconds since the Unix epoch.
	PrevBlockHash string `json:"previous_hash"` // Hash of the previous block in the chain.
	Nonce         uint64 `json:"nonce"`         // Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together. The hash is
// stored with the block so any change to the other fields can be detected
// by recomputing it.
type Block struct {
	Header  BlockHeader `json:"header"`
	Payload string      `json:"payload,omitempty"` // Sentinel data carried only by the genesis block.
	Trans   []BlockTx   `json:"transactions"`
	Hash    string      `json:"hash"`
}

// NewBlock constructs a block with a zero nonce and computes its hash.
func NewBlock(number uint64, timeStamp uint64, trans []BlockTx, prevBlockHash string) Block {
	b := Block{
		Header: BlockHeader{
			Number:        number,
			TimeStamp:     timeStamp,
			PrevBlockHash: prevBlockHash,
		},
		Trans: trans,
	}
	b.Hash = b.CalculateHash()

	return b
}

// NewGenesisBlock constructs the first block of a chain. The genesis block
// carries a sentinel payload instead of transactions and is not mined.
func NewGenesisBlock(timeStamp uint64, payload string) Block {
	b := Block{
		Header: BlockHeader{
			TimeStamp:     timeStamp,
			PrevBlockHash: GenesisPrevHash,
		},
		Payload: payload,
	}
	b.Hash = b.CalculateHash()

	return b
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Difficulty uint
	PrevBlock  Block
	TimeStamp  uint64
	Trans      []BlockTx
	EvHandler  func(v string, args ...any)
}

// POW constructs the block that follows the previous block and performs the
// work to find a nonce that solves the POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	nb := NewBlock(args.PrevBlock.Header.Number+1, args.TimeStamp, args.Trans, args.PrevBlock.Hash)

	if err := nb.Mine(ctx, args.Difficulty, args.EvHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// CalculateHash returns the SHA-256 digest of the block's index, timestamp,
// transactions, payload, previous hash and nonce.
func (b Block) CalculateHash() string {
	trans := b.Trans
	if trans == nil {
		trans = []BlockTx{}
	}

	data := struct {
		Number        uint64    `json:"index"`
		TimeStamp     uint64    `json:"timestamp"`
		Trans         []BlockTx `json:"transactions"`
		Payload       string    `json:"payload,omitempty"`
		PrevBlockHash string    `json:"previous_hash"`
		Nonce         uint64    `json:"nonce"`
	}{
		Number:        b.Header.Number,
		TimeStamp:     b.Header.TimeStamp,
		Trans:         trans,
		Payload:       b.Payload,
		PrevBlockHash: b.Header.PrevBlockHash,
		Nonce:         b.Header.Nonce,
	}

	return signature.Hash(data)
}

// Mine does the work of finding a nonce that produces a hash with the
// specified number of leading zeros. Pointer semantics are being used since
// a nonce is being discovered. Mining only stops when the puzzle is solved
// or the context is cancelled.
func (b *Block) Mine(ctx context.Context, difficulty uint, ev func(v string, args ...any)) error {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	if difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty %d: %w", difficulty, ErrDifficultyUnsolvable)
	}

	ev("database: Mine: MINING: started: blk[%d]: difficulty[%d]", b.Header.Number, difficulty)
	defer ev("database: Mine: MINING: completed: blk[%d]", b.Header.Number)

	b.Hash = b.CalculateHash()
	if b.Hash == signature.ZeroHash {
		return fmt.Errorf("blk[%d]: %w", b.Header.Number, ErrUnhashable)
	}

	var attempts uint64
	for !IsHashSolved(difficulty, b.Hash) {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Mine: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: Mine: MINING: CANCELLED")
			return ctx.Err()
		}

		if b.Header.Nonce == math.MaxUint64 {
			return fmt.Errorf("blk[%d]: %w", b.Header.Number, ErrNonceExhausted)
		}

		b.Header.Nonce++
		b.Hash = b.CalculateHash()
	}

	ev("database: Mine: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.Header.PrevBlockHash, b.Hash, attempts)

	return nil
}

// IsSealed reports whether the stored hash still matches the block data.
// Data that can't be serialized is never sealed.
func (b Block) IsSealed() bool {
	hash := b.CalculateHash()
	return hash != signature.ZeroHash && b.Hash == hash
}

// ValidateBlock takes a block and validates it against its parent.
func (b Block) ValidateBlock(previousBlock Block) error {
	hash := b.CalculateHash()
	if hash == signature.ZeroHash {
		return fmt.Errorf("blk[%d]: %w", b.Header.Number, ErrUnhashable)
	}

	if b.Hash != hash {
		return fmt.Errorf("blk[%d]: stored hash doesn't match block data, got %s, exp %s", b.Header.Number, b.Hash, hash)
	}

	nextNumber := previousBlock.Header.Number + 1
	if b.Header.Number != nextNumber {
		return fmt.Errorf("blk[%d]: this block is not the next number, exp %d", b.Header.Number, nextNumber)
	}

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("blk[%d]: parent block hash doesn't match our known parent, got %s, exp %s", b.Header.Number, b.Header.PrevBlockHash, previousBlock.Hash)
	}

	if b.Header.TimeStamp < previousBlock.Header.TimeStamp {
		return fmt.Errorf("blk[%d]: block timestamp is before parent block, parent %d, block %d", b.Header.Number, previousBlock.Header.TimeStamp, b.Header.TimeStamp)
	}

	return nil
}

// Clone returns a deep copy of the block so the copy can't be used to
// modify the original.
func (b Block) Clone() Block {
	if b.Trans != nil {
		trans := make([]BlockTx, len(b.Trans))
		for i, tx := range b.Trans {
			trans[i] = tx.Clone()
		}
		b.Trans = trans
	}

	return b
}

// =============================================================================

// IsHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	if difficulty > uint(len(hash)) {
		return false
	}

	return strings.Count(hash[:difficulty], "0") == int(difficulty)
}
