// This program runs a ledger for a set of transfers between the accounts in
// the accounts folder and prints the resulting chain.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/worker"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("ledger", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Genesis struct {
			Path       string `conf:"help:genesis file to load instead of the defaults"`
			Difficulty uint   `conf:"help:overrides the genesis difficulty when not zero"`
			Reward     uint64 `conf:"help:overrides the genesis mining reward when not zero"`
		}
		State struct {
			MinerName string        `conf:"default:miner1"`
			Worker    bool          `conf:"default:false,help:mine in the background as transfers arrive"`
			Timeout   time.Duration `conf:"default:1m"`
		}
		NameService struct {
			Folder string `conf:"default:zblock/accounts/"`
		}
		Transfers []string `conf:"default:alice:bob:10;bob:alice:3,help:from:to:value"`
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Infow("starting ledger", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The names come from the file names in the accounts folder.
	ns, err := nameservice.New(cfg.NameService.Folder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	for account, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", account)
	}

	minerKey, err := ns.PrivateKey(cfg.State.MinerName)
	if err != nil {
		return fmt.Errorf("unable to load private key for miner: %w", err)
	}
	minerID := database.PublicKeyToAccountID(minerKey.PublicKey)

	// =========================================================================
	// Ledger Support

	gen := genesis.Default()
	if cfg.Genesis.Path != "" {
		if gen, err = genesis.Load(cfg.Genesis.Path); err != nil {
			return err
		}
	}
	if cfg.Genesis.Difficulty != 0 {
		gen.Difficulty = cfg.Genesis.Difficulty
	}
	if cfg.Genesis.Reward != 0 {
		gen.MiningReward = cfg.Genesis.Reward
	}

	// Every ledger event is logged and then sent to any subscriber.
	evts := events.New()
	defer evts.Shutdown()

	ev := evts.Handler(func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	})

	st, err := state.New(state.Config{
		BeneficiaryID: minerID,
		Genesis:       gen,
		EvHandler:     ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	_, blocks := evts.Subscribe("viewer:")

	if cfg.State.Worker {
		worker.Run(st, ev)
	}

	// =========================================================================
	// Submit Transfers

	for _, transfer := range cfg.Transfers {
		signedTx, err := signTransfer(ns, transfer)
		if err != nil {
			return err
		}

		if err := st.AddTransaction(signedTx); err != nil {
			return err
		}

		log.Infow("transfer", "from", ns.Lookup(signedTx.FromID), "to", ns.Lookup(signedTx.ToID), "value", signedTx.Value)
	}

	// =========================================================================
	// Mine

	ctx, cancel := context.WithTimeout(context.Background(), cfg.State.Timeout)
	defer cancel()

	switch cfg.State.Worker {
	case true:
		if err := waitForWorker(ctx, st, blocks); err != nil {
			return err
		}

	default:
		block, err := st.MinePendingTransactions(ctx, minerID)
		if err != nil {
			return fmt.Errorf("mining: %w", err)
		}
		st.AdjustDifficulty()

		log.Infow("mined", "block", block.Header.Number, "hash", block.Hash, "nonce", block.Header.Nonce, "difficulty", st.RetrieveDifficulty())
	}

	// =========================================================================
	// Report

	if err := st.ValidateChain(); err != nil {
		return fmt.Errorf("chain is not valid: %w", err)
	}

	data, err := json.MarshalIndent(st.RetrieveChain(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chain: %w", err)
	}
	fmt.Println(string(data))

	return nil
}

// signTransfer parses a from:to:value string and signs the transfer with
// the private key of the sending account.
func signTransfer(ns *nameservice.NameService, transfer string) (database.SignedTx, error) {
	parts := strings.Split(transfer, ":")
	if len(parts) != 3 {
		return database.SignedTx{}, fmt.Errorf("transfer %q: expecting from:to:value", transfer)
	}

	fromKey, err := ns.PrivateKey(parts[0])
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("transfer %q: %w", transfer, err)
	}

	toKey, err := ns.PrivateKey(parts[1])
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("transfer %q: %w", transfer, err)
	}

	value, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return database.SignedTx{}, fmt.Errorf("transfer %q: value: %w", transfer, err)
	}

	tx := database.NewTx(
		database.PublicKeyToAccountID(fromKey.PublicKey),
		database.PublicKeyToAccountID(toKey.PublicKey),
		value,
	)

	return tx.Sign(fromKey)
}

// waitForWorker blocks until the worker has mined every submitted transfer.
// Only the miner reward is left in the pool at that point.
func waitForWorker(ctx context.Context, st *state.State, blocks <-chan string) error {
	if st.QueryMempoolLength() == 0 {
		return nil
	}

	for st.QueryMempoolLength() > 1 || len(st.RetrieveBlocks()) == 1 {
		select {
		case <-blocks:
		case <-ctx.Done():
			return fmt.Errorf("waiting for worker: %w", ctx.Err())
		}
	}

	return nil
}
