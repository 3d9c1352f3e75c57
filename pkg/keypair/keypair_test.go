package keypair

import (
	"crypto/ed25519"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testSecretKey() ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return ed25519.NewKeyFromSeed(seed)
}

func encodeSecretKey(t *testing.T, secret []byte) []byte {
	t.Helper()

	values := make([]int, len(secret))
	for i, b := range secret {
		values[i] = int(b)
	}
	content, err := json.Marshal(values)
	require.NoError(t, err)
	return content
}

func TestParse(t *testing.T) {
	secret := testSecretKey()

	kp, err := Parse(encodeSecretKey(t, secret))
	require.NoError(t, err)

	expected := secret.Public().(ed25519.PublicKey)
	require.Equal(t, []byte(expected), kp.PublicKey().Bytes())
	require.NotEmpty(t, kp.PublicKey().String())
	require.True(t, kp.PublicKey().IsOnCurve())
}

func TestParseDeterministic(t *testing.T) {
	content := encodeSecretKey(t, testSecretKey())

	first, err := Parse(content)
	require.NoError(t, err)
	second, err := Parse(content)
	require.NoError(t, err)

	require.True(t, first.PublicKey().Equals(second.PublicKey()))
	require.Equal(t, first.PublicKey().String(), second.PublicKey().String())
}

func TestParseWhitespace(t *testing.T) {
	content := encodeSecretKey(t, testSecretKey())
	padded := "\n  " + strings.ReplaceAll(string(content), ",", ", ") + "\n"

	_, err := Parse([]byte(padded))
	require.NoError(t, err)
}

func TestParseInvalid(t *testing.T) {
	secret := testSecretKey()
	valid := encodeSecretKey(t, secret)

	mismatched := make([]byte, len(secret))
	copy(mismatched, secret)
	mismatched[63] ^= 0xff

	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{name: "not json", content: "hello", expected: ErrMalformedKeypair},
		{name: "empty", content: "", expected: ErrMalformedKeypair},
		{name: "object", content: `{"not":"an array"}`, expected: ErrMalformedKeypair},
		{name: "strings", content: `["1","2"]`, expected: ErrMalformedKeypair},
		{name: "floats", content: `[1.5, 2]`, expected: ErrMalformedKeypair},
		{name: "trailing data", content: string(valid) + "]", expected: ErrMalformedKeypair},
		{name: "huge number", content: `[99999999999999999999999]`, expected: ErrMalformedKeypair},
		{name: "null element", content: nullElements(valid, 1, 2), expected: ErrMalformedKeypair},
		{name: "all null", content: "[" + strings.TrimSuffix(strings.Repeat("null,", SecretKeySize), ",") + "]", expected: ErrMalformedKeypair},
		{name: "null", content: "null", expected: ErrInvalidKeyLength},
		{name: "empty array", content: "[]", expected: ErrInvalidKeyLength},
		{name: "seed only", content: string(encodeSecretKey(t, secret[:32])), expected: ErrInvalidKeyLength},
		{name: "too long", content: string(encodeSecretKey(t, append(append([]byte{}, secret...), 0))), expected: ErrInvalidKeyLength},
		{name: "negative byte", content: negativeFirst(valid), expected: ErrByteOutOfRange},
		{name: "byte above range", content: aboveRangeFirst(valid), expected: ErrByteOutOfRange},
		{name: "public key mismatch", content: string(encodeSecretKey(t, mismatched)), expected: ErrKeyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := Parse([]byte(tt.content))
			require.Error(t, err)
			require.Nil(t, kp)
			require.True(t, errors.Is(err, tt.expected), "unexpected error: %v", err)
		})
	}
}

// negativeFirst replaces the first array element with -1.
func negativeFirst(content []byte) string {
	return replaceFirst(content, "-1")
}

// aboveRangeFirst replaces the first array element with 256.
func aboveRangeFirst(content []byte) string {
	return replaceFirst(content, "256")
}

// nullElements replaces the array elements at the given indexes with null.
func nullElements(content []byte, indexes ...int) string {
	values := strings.Split(strings.Trim(string(content), "[]"), ",")
	for _, i := range indexes {
		values[i] = "null"
	}
	return "[" + strings.Join(values, ",") + "]"
}

func replaceFirst(content []byte, value string) string {
	s := string(content)
	comma := strings.Index(s, ",")
	return "[" + value + s[comma:]
}

func TestRead(t *testing.T) {
	content := encodeSecretKey(t, testSecretKey())

	kp, err := Read(strings.NewReader(string(content)))
	require.NoError(t, err)
	require.False(t, kp.PublicKey().IsZero())
}

func TestReadTooLarge(t *testing.T) {
	content := strings.Repeat(" ", MaxKeypairFileSize+1)

	_, err := Read(strings.NewReader(content))
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSign(t *testing.T) {
	secret := testSecretKey()
	kp, err := Parse(encodeSecretKey(t, secret))
	require.NoError(t, err)

	message := []byte("message")
	signature := kp.Sign(message)
	require.Len(t, signature, ed25519.SignatureSize)
	require.True(t, ed25519.Verify(kp.PublicKey().Bytes(), message, signature))
}

func TestZero(t *testing.T) {
	kp, err := Generate()
	require.NoError(t, err)
	pk := kp.PublicKey()

	require.False(t, kp.Zeroed())
	kp.Zero()
	require.True(t, kp.Zeroed())
	require.Nil(t, kp.Sign([]byte("message")))
	require.Equal(t, pk, kp.PublicKey())
}

func TestGenerate(t *testing.T) {
	first, err := Generate()
	require.NoError(t, err)
	second, err := Generate()
	require.NoError(t, err)

	require.False(t, first.PublicKey().Equals(second.PublicKey()))
}
