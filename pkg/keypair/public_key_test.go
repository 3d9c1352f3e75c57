package keypair

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePublicKey(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	parsed, err := ParsePublicKey(kp.PublicKey().ToBase58())
	require.NoError(t, err)
	require.Equal(t, kp.PublicKey(), parsed)
}

func TestParsePublicKeyInvalid(t *testing.T) {
	_, err := ParsePublicKey("not-base58!")
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = ParsePublicKey("11")
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestPublicKeyJSON(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)

	data, err := json.Marshal(kp.PublicKey())
	require.NoError(t, err)
	require.Equal(t, `"`+kp.PublicKey().String()+`"`, string(data))

	var decoded PublicKey
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, kp.PublicKey(), decoded)
}

func TestPublicKeyZero(t *testing.T) {
	var pk PublicKey
	require.True(t, pk.IsZero())
	require.Equal(t, "11111111111111111111111111111111", pk.String())
}
