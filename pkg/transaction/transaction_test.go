package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/status-im/status-wallet-go/pkg/keypair"
)

func generate(t *testing.T) *keypair.Keypair {
	t.Helper()
	kp, err := keypair.Generate()
	require.NoError(t, err)
	return kp
}

func TestPartialSign(t *testing.T) {
	payer := generate(t)
	other := generate(t)

	tx := New([]byte("message"), payer.PublicKey(), other.PublicKey())
	require.Equal(t, 0, tx.SignatureCount())

	require.NoError(t, tx.PartialSign(payer))
	require.Equal(t, 1, tx.SignatureCount())
	require.True(t, tx.VerifySignatures(false))
	require.False(t, tx.VerifySignatures(true))

	_, ok := tx.SignatureOf(other.PublicKey())
	require.False(t, ok)

	require.NoError(t, tx.PartialSign(other))
	require.Equal(t, 2, tx.SignatureCount())
	require.True(t, tx.VerifySignatures(true))
}

func TestPartialSignAppendsUnknownSigner(t *testing.T) {
	kp := generate(t)

	tx := New([]byte("message"))
	require.NoError(t, tx.PartialSign(kp))
	require.Len(t, tx.Signatures, 1)
	require.Equal(t, kp.PublicKey(), tx.Signatures[0].PublicKey)
}

func TestPartialSignTwiceReplaces(t *testing.T) {
	kp := generate(t)

	tx := New([]byte("message"), kp.PublicKey())
	require.NoError(t, tx.PartialSign(kp))
	require.NoError(t, tx.PartialSign(kp))
	require.Len(t, tx.Signatures, 1)
	require.Equal(t, 1, tx.SignatureCount())
}

func TestPartialSignErrors(t *testing.T) {
	kp := generate(t)

	var tx *Transaction
	require.ErrorIs(t, tx.PartialSign(kp), ErrNilTransaction)

	require.ErrorIs(t, New(nil, kp.PublicKey()).PartialSign(kp), ErrEmptyMessage)

	kp.Zero()
	require.ErrorIs(t, New([]byte("message")).PartialSign(kp), ErrSignerFailed)
}

func TestVerifyDetectsTampering(t *testing.T) {
	kp := generate(t)

	tx := New([]byte("message"), kp.PublicKey())
	require.NoError(t, tx.PartialSign(kp))

	tx.Message = []byte("tampered")
	require.False(t, tx.VerifySignatures(false))
}

func TestTransactionJSON(t *testing.T) {
	kp := generate(t)

	tx := New([]byte("message"), kp.PublicKey())
	require.NoError(t, tx.PartialSign(kp))

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, tx.Message, decoded.Message)
	require.True(t, decoded.VerifySignatures(true))
}
