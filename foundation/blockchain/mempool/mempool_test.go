package mempool_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func sign(t *testing.T, value uint64) database.BlockTx {
	pk, err := crypto.HexToECDSA("fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959")
	if err != nil {
		t.Fatalf("Should be able to load private key: %s", err)
	}

	from := database.PublicKeyToAccountID(pk.PublicKey)
	signedTx, err := database.NewTx(from, from, value).Sign(pk)
	if err != nil {
		t.Fatalf("Should be able to sign transaction: %s", err)
	}

	return database.NewBlockTx(signedTx)
}

func TestCRUD(t *testing.T) {
	t.Log("Given the need to validate mempool api.")
	{
		t.Logf("\tTest 0:\tWhen handling a set of transactions.")
		{
			mp := mempool.New()

			values := []uint64{10, 5, 7}
			for i, value := range values {
				if n := mp.Add(sign(t, value)); n != i+1 {
					t.Fatalf("\t%s\tTest 0:\tShould get back the pool size %d, got %d.", failed, i+1, n)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to add transactions.", success)

			for i, tx := range mp.Snapshot() {
				if tx.Value != values[i] {
					t.Logf("\t%s\tTest 0:\tgot: %d", failed, tx.Value)
					t.Logf("\t%s\tTest 0:\texp: %d", failed, values[i])
					t.Fatalf("\t%s\tTest 0:\tShould keep submission order.", failed)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould keep submission order.", success)

			snap := mp.Snapshot()
			snap[0].Value = 1000
			snap[0].Signature[0] ^= 0xff
			if tx := mp.Snapshot()[0]; tx.Value != 10 || !tx.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould not change the pool through a snapshot.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not change the pool through a snapshot.", success)

			mp.Add(sign(t, 3))
			reward := database.NewRewardTx("miner", 50)
			mp.Reseed(3, reward)

			pool := mp.Snapshot()
			if len(pool) != 2 || !pool[0].IsSystem() || pool[1].Value != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould reseed with the reward ahead of late transactions: %v", failed, pool)
			}
			t.Logf("\t%s\tTest 0:\tShould reseed with the reward ahead of late transactions.", success)

			if mp.CountUser() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould count one user transaction, got %d.", failed, mp.CountUser())
			}
			t.Logf("\t%s\tTest 0:\tShould count user transactions.", success)
		}
	}
}
