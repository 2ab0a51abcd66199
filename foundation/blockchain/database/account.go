package database

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SystemAccountID is the sentinel sender of the reward transactions the
// ledger issues to miners. It is not a public key.
const SystemAccountID AccountID = "System"

// ErrAccountEncoding is returned when an account id holds bytes that are
// not valid UTF-8. JSON would replace them, so two different ids could
// serialize to the same bytes.
var ErrAccountEncoding = errors.New("account id is not valid utf-8")

// AccountID represents the identity of a party to a transaction. For user
// accounts this is the hex-encoded uncompressed secp256k1 public key, so a
// signature can be checked against the id directly.
type AccountID string

// ToAccountID converts a hex-encoded string to an account id and validates
// the string is a properly formatted public key.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account id.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(hexutil.Encode(crypto.FromECDSAPub(&pk)))
}

// PublicKey returns the raw public key bytes the account id represents.
func (a AccountID) PublicKey() ([]byte, error) {
	return hexutil.Decode(string(a))
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded public key.
func (a AccountID) IsAccountID() bool {
	b, err := a.PublicKey()
	if err != nil {
		return false
	}

	_, err = crypto.UnmarshalPubkey(b)
	return err == nil
}

// String returns an abbreviated form of the id for logging.
func (a AccountID) String() string {
	const show = 10

	if len(a) <= 2*show {
		return string(a)
	}

	return string(a[:show]) + ".." + string(a[len(a)-show+2:])
}

// IsEncodable reports whether the id survives the canonical serialization
// unchanged.
func (a AccountID) IsEncodable() bool {
	return utf8.ValidString(string(a))
}

// MarshalJSON implements the json.Marshaler interface. Ids that would be
// altered by the encoding are refused.
func (a AccountID) MarshalJSON() ([]byte, error) {
	if !a.IsEncodable() {
		return nil, ErrAccountEncoding
	}

	return json.Marshal(string(a))
}
