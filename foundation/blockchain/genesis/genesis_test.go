package genesis_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Default(t *testing.T) {
	g := genesis.Default()

	if g.Difficulty != 2 || g.MiningReward != 50 || g.TargetBlockTime != 5000 || g.Payload != "Genesis Block" || !g.Date.IsZero() {
		t.Fatalf("Should get back the default settings, got %+v", g)
	}

	if err := g.Validate(); err != nil {
		t.Fatalf("Should accept the default settings: %s", err)
	}
}

func Test_Load(t *testing.T) {
	type table struct {
		name    string
		content string
		valid   bool
		exp     genesis.Genesis
	}

	tt := []table{
		{
			name:    "full",
			content: `{"difficulty":3,"mining_reward":100,"target_block_time":2000,"payload":"First"}`,
			valid:   true,
			exp:     genesis.Genesis{Difficulty: 3, MiningReward: 100, TargetBlockTime: 2000, Payload: "First"},
		},
		{
			name:    "dated",
			content: `{"date":"2024-01-01T00:00:00Z","mining_reward":60}`,
			valid:   true,
			exp:     genesis.Genesis{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Difficulty: 2, MiningReward: 60, TargetBlockTime: 5000, Payload: "Genesis Block"},
		},
		{
			name:    "partial",
			content: `{"mining_reward":75}`,
			valid:   true,
			exp:     genesis.Genesis{Difficulty: 2, MiningReward: 75, TargetBlockTime: 5000, Payload: "Genesis Block"},
		},
		{
			name:    "zero-difficulty",
			content: `{"difficulty":0}`,
			valid:   false,
		},
		{
			name:    "too-difficult",
			content: `{"difficulty":65}`,
			valid:   false,
		},
		{
			name:    "zero-reward",
			content: `{"mining_reward":0}`,
			valid:   false,
		},
	}

	t.Log("Given the need to load genesis files.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s file.", testID, tst.name)
			{
				f := func(t *testing.T) {
					path := filepath.Join(t.TempDir(), "genesis.json")
					if err := os.WriteFile(path, []byte(tst.content), 0600); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to write the file: %v", failed, testID, err)
					}

					g, err := genesis.Load(path)
					if !tst.valid {
						if err == nil {
							t.Fatalf("\t%s\tTest %d:\tShould reject the file.", failed, testID)
						}
						if !validate.IsFieldErrors(err) {
							t.Fatalf("\t%s\tTest %d:\tShould get back field errors: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould reject the file: %v", success, testID, err)
						return
					}

					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to load the file: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to load the file.", success, testID)

					if !g.Date.Equal(tst.exp.Date) {
						t.Fatalf("\t%s\tTest %d:\tShould get back the genesis date, got %v.", failed, testID, g.Date)
					}

					g.Date = tst.exp.Date
					if g != tst.exp {
						t.Logf("\t%s\tTest %d:\tgot: %+v", failed, testID, g)
						t.Logf("\t%s\tTest %d:\texp: %+v", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right settings.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right settings.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
