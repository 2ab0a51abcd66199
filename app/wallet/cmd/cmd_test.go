package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	success = "\u2713"
	failed  = "\u2717"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func Test_Wallet(t *testing.T) {
	dir := t.TempDir()

	t.Log("Given the need to sign transfers from the command line.")
	{
		t.Log("\tWhen generating keys for two accounts.")
		{
			alice, err := execute(t, "", "generate", "-a", "alice", "-p", dir)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to generate a key.", success)

			if _, err := os.Stat(filepath.Join(dir, "alice.ecdsa")); err != nil {
				t.Fatalf("\t%s\tShould find the key file on disk: %v", failed, err)
			}
			t.Logf("\t%s\tShould find the key file on disk.", success)

			if _, err := execute(t, "", "generate", "-a", "alice", "-p", dir); err == nil {
				t.Fatalf("\t%s\tShould not overwrite an existing key.", failed)
			}
			t.Logf("\t%s\tShould not overwrite an existing key.", success)

			account, err := execute(t, "", "account", "-a", "alice", "-p", dir)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to print the account: %v", failed, err)
			}
			if account != alice {
				t.Logf("\t%s\tgot: %s", failed, account)
				t.Logf("\t%s\texp: %s", failed, alice)
				t.Fatalf("\t%s\tShould print the account that was generated.", failed)
			}
			t.Logf("\t%s\tShould print the account that was generated.", success)

			bob, err := execute(t, "", "generate", "-a", "bob", "-p", dir)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to generate a second key: %v", failed, err)
			}

			t.Log("\tWhen signing a transfer between them.")
			{
				signed, err := execute(t, "", "sign", "-a", "alice", "-p", dir, "-t", bob, "-v", "25")
				if err != nil {
					t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to sign the transfer.", success)

				if _, err := execute(t, signed, "verify"); err != nil {
					t.Fatalf("\t%s\tShould verify the signed transfer: %v", failed, err)
				}
				t.Logf("\t%s\tShould verify the signed transfer.", success)

				tampered := strings.Replace(signed, `"amount": 25`, `"amount": 26`, 1)
				if _, err := execute(t, tampered, "verify"); err == nil {
					t.Fatalf("\t%s\tShould reject a tampered transfer.", failed)
				}
				t.Logf("\t%s\tShould reject a tampered transfer.", success)

				if _, err := execute(t, "", "sign", "-a", "alice", "-p", dir, "-t", "nobody", "-v", "1"); err == nil {
					t.Fatalf("\t%s\tShould reject an invalid receiver.", failed)
				}
				t.Logf("\t%s\tShould reject an invalid receiver.", success)
			}
		}
	}
}
