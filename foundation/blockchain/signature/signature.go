// Package signature provides helper functions for handling the ledger's
// hashing and signature needs.
package signature

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
)

// ledgerID is an arbitrary number added to the recovery id of every
// signature. It makes it clear the signature was produced for this ledger.
// Ethereum and Bitcoin do this as well, but they use the value of 27.
const ledgerID = 29

// Length is the number of bytes in a signature in the [R|S|V] format.
const Length = crypto.SignatureLength

// ZeroHash represents a hash of data that could not be serialized. No
// sealed block can carry it.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// Set of errors returned by Verify.
var (
	ErrSignatureLength = errors.New("invalid signature length")
	ErrRecoveryID      = errors.New("invalid recovery id")
	ErrSignatureValues = errors.New("invalid signature values")
	ErrPublicKey       = errors.New("invalid public key")
	ErrMismatch        = errors.New("signature does not match public key")
)

// =============================================================================

// Hash returns the hex encoded SHA-256 digest of the canonical JSON
// serialization of the value. ZeroHash is returned when the value can't
// be serialized.
func Hash(value any) string {
	data, err := Canonical(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Canonical returns the canonical serialization of the value. Struct fields
// are written in declaration order without whitespace, so the same value
// always produces the same bytes.
func Canonical(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Sign uses the specified private key to sign the data. The signature is
// returned in the [R|S|V] format with the ledger id added to V.
func Sign(value any, privateKey *ecdsa.PrivateKey) ([]byte, error) {

	// Prepare the data for signing.
	data, err := stamp(value)
	if err != nil {
		return nil, err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return nil, err
	}

	sig[crypto.RecoveryIDOffset] += ledgerID

	return sig, nil
}

// Verify checks the signature was produced over the value by the private key
// belonging to the specified public key.
func Verify(value any, publicKey []byte, sig []byte) error {
	if len(sig) != Length {
		return ErrSignatureLength
	}

	// Check the recovery id is either 0 or 1.
	v := sig[crypto.RecoveryIDOffset] - ledgerID
	if v != 0 && v != 1 {
		return ErrRecoveryID
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(v, r, s, true) {
		return ErrSignatureValues
	}

	if _, err := crypto.UnmarshalPubkey(publicKey); err != nil {
		return ErrPublicKey
	}

	data, err := stamp(value)
	if err != nil {
		return err
	}

	if !crypto.VerifySignature(publicKey, data, sig[:crypto.RecoveryIDOffset]) {
		return ErrMismatch
	}

	// VerifySignature ignores V, recovering the key covers it.
	raw := make([]byte, Length)
	copy(raw, sig)
	raw[crypto.RecoveryIDOffset] = v

	recovered, err := crypto.Ecrecover(data, raw)
	if err != nil {
		return err
	}

	if !bytes.Equal(recovered, publicKey) {
		return ErrMismatch
	}

	return nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this data with
// the ledger stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {

	// Marshal the data.
	v, err := Canonical(value)
	if err != nil {
		return nil, err
	}

	// Hash the data into a 32 byte array. This will provide
	// a data length consistency with all data.
	txHash := crypto.Keccak256(v)

	// This stamp is used so signatures we produce when signing data
	// are always unique to the ledger.
	stamp := []byte("\x19Ledger Signed Message:\n32")

	// Hash the stamp and txHash together in a final 32 byte array
	// that represents the data.
	return crypto.Keccak256(stamp, txHash), nil
}
