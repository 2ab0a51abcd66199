package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

func Test_NameService(t *testing.T) {
	dir := t.TempDir()

	keys := map[string]string{
		"alice": "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959",
		"bob":   "9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93",
	}

	ids := make(map[string]database.AccountID)
	for name, hexKey := range keys {
		pk, err := crypto.HexToECDSA(hexKey)
		if err != nil {
			t.Fatalf("Should be able to load private key: %s", err)
		}
		if err := crypto.SaveECDSA(filepath.Join(dir, name+nameservice.KeyExtension), pk); err != nil {
			t.Fatalf("Should be able to save private key: %s", err)
		}
		ids[name] = database.PublicKeyToAccountID(pk.PublicKey)
	}

	ns, err := nameservice.New(dir)
	if err != nil {
		t.Fatalf("Should be able to construct the name service: %s", err)
	}

	for name, id := range ids {
		if got := ns.Lookup(id); got != name {
			t.Fatalf("Should resolve %s, got %s", name, got)
		}

		pk, err := ns.PrivateKey(name)
		if err != nil {
			t.Fatalf("Should get back the key for %s: %s", name, err)
		}
		if database.PublicKeyToAccountID(pk.PublicKey) != id {
			t.Fatalf("Should get back the right key for %s", name)
		}
	}

	if got := ns.Lookup(database.SystemAccountID); got != string(database.SystemAccountID) {
		t.Fatalf("Should return unknown accounts as is, got %s", got)
	}

	if names := ns.Names(); len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Fatalf("Should get back sorted names, got %v", names)
	}

	if _, err := ns.PrivateKey("carol"); err == nil {
		t.Fatalf("Should not find an unknown account.")
	}

	if len(ns.Copy()) != 2 {
		t.Fatalf("Should copy both accounts.")
	}
}
