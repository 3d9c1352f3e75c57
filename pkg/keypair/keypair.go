package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/status-im/status-wallet-go/pkg/utils"
)

const (
	SecretKeySize = ed25519.PrivateKeySize

	// MaxKeypairFileSize bounds how much of an untrusted keypair file is read.
	// A 64 element array of 3 digit numbers fits well below it.
	MaxKeypairFileSize = 4096
)

var (
	ErrMalformedKeypair = errors.New("keypair is not a JSON array of integers")
	ErrInvalidKeyLength = errors.New("invalid secret key length")
	ErrByteOutOfRange   = errors.New("secret key byte out of range")
	ErrKeyMismatch      = errors.New("provided secret key is invalid")
	ErrFileTooLarge     = errors.New("keypair file too large")
)

// Keypair holds an ed25519 signing key recovered from raw secret key bytes.
// The first 32 bytes are the seed, the last 32 bytes the public key.
type Keypair struct {
	mu        sync.RWMutex
	private   ed25519.PrivateKey
	publicKey PublicKey
}

// Parse decodes a JSON array of byte values into a keypair.
// The array must hold exactly SecretKeySize integers, each within 0..255, and
// its trailing half must match the public key derived from its leading half.
func Parse(content []byte) (*Keypair, error) {
	var values []*int64
	if err := json.Unmarshal(content, &values); err != nil {
		return nil, errors.Wrap(ErrMalformedKeypair, err.Error())
	}
	defer func() {
		for _, v := range values {
			if v != nil {
				*v = 0
			}
		}
	}()

	if len(values) != SecretKeySize {
		return nil, errors.Wrapf(ErrInvalidKeyLength, "expected %d bytes, got %d", SecretKeySize, len(values))
	}

	var secret [SecretKeySize]byte
	defer utils.Zero(secret[:])

	for i, v := range values {
		if v == nil {
			return nil, errors.Wrapf(ErrMalformedKeypair, "null at index %d", i)
		}
		if *v < 0 || *v > 255 {
			return nil, errors.Wrapf(ErrByteOutOfRange, "value %d at index %d", *v, i)
		}
		secret[i] = byte(*v)
	}

	return fromSecretKey(secret)
}

// Read parses a keypair from r, reading at most MaxKeypairFileSize bytes.
func Read(r io.Reader) (*Keypair, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxKeypairFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keypair")
	}
	defer utils.Zero(content)

	if len(content) > MaxKeypairFileSize {
		return nil, ErrFileTooLarge
	}

	return Parse(content)
}

// Generate creates a keypair from a random seed.
func Generate() (*Keypair, error) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate keypair")
	}

	var secret [SecretKeySize]byte
	copy(secret[:], private)
	utils.Zero(private)
	defer utils.Zero(secret[:])

	return fromSecretKey(secret)
}

func fromSecretKey(secret [SecretKeySize]byte) (*Keypair, error) {
	private := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])

	if subtle.ConstantTimeCompare(private[ed25519.SeedSize:], secret[ed25519.SeedSize:]) != 1 {
		utils.Zero(private)
		return nil, ErrKeyMismatch
	}

	kp := &Keypair{private: private}
	copy(kp.publicKey[:], private[ed25519.SeedSize:])
	return kp, nil
}

func (kp *Keypair) PublicKey() PublicKey {
	return kp.publicKey
}

// Sign returns the ed25519 signature of message, or nil once the keypair is zeroed.
func (kp *Keypair) Sign(message []byte) []byte {
	kp.mu.RLock()
	defer kp.mu.RUnlock()

	if kp.private == nil {
		return nil
	}

	return ed25519.Sign(kp.private, message)
}

// Zero wipes the private key. The public key stays readable.
func (kp *Keypair) Zero() {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	utils.Zero(kp.private)
	kp.private = nil
}

func (kp *Keypair) Zeroed() bool {
	kp.mu.RLock()
	defer kp.mu.RUnlock()

	return kp.private == nil
}
