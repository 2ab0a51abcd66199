// Package genesis maintains access to the genesis settings of a ledger.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/ledger/foundation/validate"
)

// Set of default values for a new ledger.
const (
	DefaultDifficulty      = 2
	DefaultMiningReward    = 50
	DefaultTargetBlockTime = 5000
	DefaultPayload         = "Genesis Block"
)

// Genesis represents the settings a ledger starts with.
type Genesis struct {
	Date            time.Time `json:"date,omitzero"`                               // Stamps the genesis block, the clock is used when zero.
	Difficulty      uint      `json:"difficulty" validate:"required,min=1,max=64"` // Starting number of leading zeros a block hash needs.
	MiningReward    uint64    `json:"mining_reward" validate:"required"`           // Reward paid to the miner of each block.
	TargetBlockTime uint64    `json:"target_block_time" validate:"required"`       // Milliseconds between blocks below which difficulty goes up.
	Payload         string    `json:"payload" validate:"required"`                 // Sentinel data stored in the genesis block.
}

// Default returns the genesis settings used when nothing else is provided.
func Default() Genesis {
	return Genesis{
		Difficulty:      DefaultDifficulty,
		MiningReward:    DefaultMiningReward,
		TargetBlockTime: DefaultTargetBlockTime,
		Payload:         DefaultPayload,
	}
}

// Validate checks the settings can be used to start a ledger.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}

	return nil
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("genesis: decoding %s: %w", path, err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
