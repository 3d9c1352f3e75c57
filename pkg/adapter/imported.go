package adapter

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/status-im/status-wallet-go/internal"
	"github.com/status-im/status-wallet-go/pkg/keypair"
)

type FailureKind string

const (
	InvalidInput FailureKind = "invalid-input"
)

// ImportFailure is returned when a keypair file cannot be turned into an adapter.
type ImportFailure struct {
	Kind FailureKind
	Err  error
}

func (f *ImportFailure) Error() string {
	return fmt.Sprintf("invalid keypair file: %v", f.Err)
}

func (f *ImportFailure) Unwrap() error {
	return f.Err
}

func IsImportFailure(err error) bool {
	var failure *ImportFailure
	return errors.As(err, &failure)
}

// NewImported builds an adapter from the contents of a keypair file: a JSON array
// of the 64 secret key bytes.
func NewImported(content []byte, opts ...Option) (a *KeypairAdapter, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = &ImportFailure{Kind: InvalidInput, Err: fmt.Errorf("%v", r)}
		}
	}()

	kp, err := keypair.Parse(content)
	if err != nil {
		return nil, &ImportFailure{Kind: InvalidInput, Err: err}
	}

	return newImported(kp, opts...), nil
}

// ReadImported is NewImported over a reader, bounded to keypair.MaxKeypairFileSize.
func ReadImported(r io.Reader, opts ...Option) (a *KeypairAdapter, err error) {
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = &ImportFailure{Kind: InvalidInput, Err: fmt.Errorf("%v", r)}
		}
	}()

	kp, err := keypair.Read(r)
	if err != nil {
		return nil, &ImportFailure{Kind: InvalidInput, Err: err}
	}

	return newImported(kp, opts...), nil
}

func newImported(kp *keypair.Keypair, opts ...Option) *KeypairAdapter {
	opts = append([]Option{WithMetadata(internal.ImportedWalletName, internal.ImportedWalletURL, internal.ImportedWalletIcon)}, opts...)
	return newKeypairAdapter(kp, opts...)
}

// NewBurner builds an adapter over a throwaway key generated in memory.
func NewBurner(opts ...Option) (*KeypairAdapter, error) {
	kp, err := keypair.Generate()
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithMetadata(internal.BurnerWalletName, internal.BurnerWalletURL, internal.BurnerWalletIcon)}, opts...)
	return newKeypairAdapter(kp, opts...), nil
}

var (
	_ Adapter = (*KeypairAdapter)(nil)
)
