package transaction

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/status-im/status-wallet-go/pkg/keypair"
	"github.com/status-im/status-wallet-go/pkg/utils"
)

var (
	ErrNilTransaction = errors.New("transaction is nil")
	ErrEmptyMessage   = errors.New("transaction message is empty")
	ErrSignerFailed   = errors.New("signer produced no signature")
)

type Signer interface {
	PublicKey() keypair.PublicKey
	Sign(message []byte) []byte
}

type SignaturePair struct {
	PublicKey keypair.PublicKey  `json:"publicKey"`
	Signature utils.Base58String `json:"signature"`
}

// Transaction is a serialized message together with its signature slots.
// Building the message is the caller's business; this type only collects signatures.
type Transaction struct {
	Message    []byte          `json:"message"`
	Signatures []SignaturePair `json:"signatures"`
}

// New returns a transaction with an empty signature slot for every required signer.
func New(message []byte, signers ...keypair.PublicKey) *Transaction {
	tx := &Transaction{
		Message:    message,
		Signatures: make([]SignaturePair, len(signers)),
	}
	for i, pk := range signers {
		tx.Signatures[i].PublicKey = pk
	}
	return tx
}

// PartialSign signs the message with every signer, filling its slot or appending one.
// Signatures of other signers are left untouched.
func (t *Transaction) PartialSign(signers ...Signer) error {
	if t == nil {
		return ErrNilTransaction
	}
	if len(t.Message) == 0 {
		return ErrEmptyMessage
	}

	for _, signer := range signers {
		signature := signer.Sign(t.Message)
		if signature == nil {
			return errors.Wrap(ErrSignerFailed, signer.PublicKey().String())
		}
		t.setSignature(signer.PublicKey(), signature)
	}

	return nil
}

func (t *Transaction) setSignature(pk keypair.PublicKey, signature []byte) {
	for i := range t.Signatures {
		if t.Signatures[i].PublicKey.Equals(pk) {
			t.Signatures[i].Signature = signature
			return
		}
	}

	t.Signatures = append(t.Signatures, SignaturePair{PublicKey: pk, Signature: signature})
}

func (t *Transaction) SignatureOf(pk keypair.PublicKey) ([]byte, bool) {
	for _, pair := range t.Signatures {
		if pair.PublicKey.Equals(pk) && len(pair.Signature) > 0 {
			return pair.Signature, true
		}
	}
	return nil, false
}

// SignatureCount returns the number of filled signature slots.
func (t *Transaction) SignatureCount() int {
	count := 0
	for _, pair := range t.Signatures {
		if len(pair.Signature) > 0 {
			count++
		}
	}
	return count
}

// VerifySignatures checks every present signature against the message.
// With requireAll, an empty slot fails verification too.
func (t *Transaction) VerifySignatures(requireAll bool) bool {
	for _, pair := range t.Signatures {
		if len(pair.Signature) == 0 {
			if requireAll {
				return false
			}
			continue
		}
		if !ed25519.Verify(pair.PublicKey.Bytes(), t.Message, pair.Signature) {
			return false
		}
	}
	return true
}
