package database

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Tx is the value transfer information between two parties. This is the
// data that is signed, so the field order is part of the contract.
type Tx struct {
	FromID AccountID `json:"sender"`   // Public key of the account sending value.
	ToID   AccountID `json:"receiver"` // Public key of the account receiving value.
	Value  uint64    `json:"amount"`   // Monetary value transferred.
}

// NewTx constructs a new unsigned transaction. The account ids are not
// checked here, a malformed sender surfaces when the signature is verified.
func NewTx(fromID AccountID, toID AccountID, value uint64) Tx {
	return Tx{
		FromID: fromID,
		ToID:   toID,
		Value:  value,
	}
}

// Sign uses the specified private key to sign the transaction. Signing with
// a key that does not belong to the sender is not detected here, the
// resulting transaction will fail validation.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {
	sig, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, err
	}

	signedTx := SignedTx{
		Tx:        tx,
		Signature: sig,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how callers
// provide transactions for inclusion into the ledger.
type SignedTx struct {
	Tx
	Signature hexutil.Bytes `json:"signature,omitempty"` // [R|S|V] signature, absent until signed.
}

// Validate verifies the transaction has a sender and a signature that
// was produced by the sender over the transaction data.
func (tx SignedTx) Validate() error {
	if tx.FromID == "" {
		return errors.New("missing sender")
	}

	if !tx.FromID.IsEncodable() || !tx.ToID.IsEncodable() {
		return ErrAccountEncoding
	}

	if len(tx.Signature) == 0 {
		return errors.New("missing signature")
	}

	publicKey, err := tx.FromID.PublicKey()
	if err != nil {
		return fmt.Errorf("sender is not a public key: %w", err)
	}

	return signature.Verify(tx.Tx, publicKey, tx.Signature)
}

// IsValid reports whether the transaction passes Validate. The reason for
// a failure is intentionally not reported.
func (tx SignedTx) IsValid() bool {
	return tx.Validate() == nil
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	return fmt.Sprintf("%s->%s:%d", tx.FromID, tx.ToID, tx.Value)
}

// =============================================================================

// Issuer tags who created a transaction recorded in a block.
type Issuer string

// Set of issuers a block transaction can carry.
const (
	IssuerUser   Issuer = "user"   // Submitted by a caller, must carry a valid signature.
	IssuerSystem Issuer = "system" // Issued by the ledger as a mining reward, unsigned.
)

// BlockTx represents a transaction as it's recorded in the pending pool and
// inside a block.
type BlockTx struct {
	SignedTx
	Issuer Issuer `json:"issuer"`
}

// NewBlockTx constructs a block transaction for a user submitted transaction.
func NewBlockTx(signedTx SignedTx) BlockTx {
	return BlockTx{
		SignedTx: signedTx,
		Issuer:   IssuerUser,
	}
}

// NewRewardTx constructs the system issued transaction that pays the
// mining reward to the specified account.
func NewRewardTx(toID AccountID, reward uint64) BlockTx {
	return BlockTx{
		SignedTx: SignedTx{
			Tx: NewTx(SystemAccountID, toID, reward),
		},
		Issuer: IssuerSystem,
	}
}

// IsSystem reports whether the ledger issued this transaction.
func (tx BlockTx) IsSystem() bool {
	return tx.Issuer == IssuerSystem
}

// Validate checks the transaction according to its issuer. User transactions
// need a valid signature. System transactions are exempt from signing but
// must come from the system account and carry no signature.
func (tx BlockTx) Validate() error {
	switch tx.Issuer {
	case IssuerUser:
		return tx.SignedTx.Validate()

	case IssuerSystem:
		if tx.FromID != SystemAccountID {
			return fmt.Errorf("system transaction from %q", tx.FromID)
		}
		if len(tx.Signature) != 0 {
			return errors.New("system transaction carries a signature")
		}
		if !tx.ToID.IsEncodable() {
			return ErrAccountEncoding
		}
		return nil
	}

	return fmt.Errorf("unknown issuer %q", tx.Issuer)
}

// Clone returns a deep copy of the transaction.
func (tx BlockTx) Clone() BlockTx {
	if tx.Signature != nil {
		sig := make(hexutil.Bytes, len(tx.Signature))
		copy(sig, tx.Signature)
		tx.Signature = sig
	}

	return tx
}
