package keypair

import (
	"bytes"
	"encoding/json"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/status-im/status-wallet-go/pkg/utils"
)

const PublicKeySize = 32

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// PublicKey is the public identity of a keypair.
// It is rendered as a base-58 string wherever it leaves the process.
type PublicKey [PublicKeySize]byte

func ParsePublicKey(str string) (PublicKey, error) {
	var pk PublicKey

	b, err := utils.B58tob(str)
	if err != nil {
		return pk, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	if len(b) != PublicKeySize {
		return pk, errors.Wrapf(ErrInvalidPublicKey, "expected %d bytes, got %d", PublicKeySize, len(b))
	}

	copy(pk[:], b)
	return pk, nil
}

func (pk PublicKey) String() string {
	return utils.Btob58(pk[:])
}

func (pk PublicKey) ToBase58() string {
	return pk.String()
}

func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, pk[:])
	return b
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(pk[:], other[:])
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// IsOnCurve reports whether the key decodes to a point on the ed25519 curve.
// Program-derived addresses are not.
func (pk PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

// MarshalJSON serializes PublicKey to base58
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

// UnmarshalJSON deserializes PublicKey from base58
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var x string
	err := json.Unmarshal(data, &x)
	if err != nil {
		return err
	}

	parsed, err := ParsePublicKey(x)
	if err != nil {
		return err
	}

	*pk = parsed
	return nil
}
