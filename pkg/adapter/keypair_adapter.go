package adapter

import (
	goerrors "errors"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/status-im/status-wallet-go/pkg/emitter"
	"github.com/status-im/status-wallet-go/pkg/keypair"
)

var (
	ErrAdapterDestroyed = errors.New("wallet adapter destroyed")
)

// KeypairAdapter is a wallet adapter backed by a keypair held in process memory.
// Since the key is already loaded, it is always Installed and connecting never blocks.
type KeypairAdapter struct {
	*emitter.Emitter[Event]

	name string
	url  string
	icon string

	mu        sync.RWMutex
	keypair   *keypair.Keypair
	publicKey keypair.PublicKey
	connected bool
	destroyed bool
	logger    *zap.Logger
}

func newKeypairAdapter(kp *keypair.Keypair, opts ...Option) *KeypairAdapter {
	a := &KeypairAdapter{
		keypair:   kp,
		publicKey: kp.PublicKey(),
		logger:    zap.L().Named("adapter"),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With(zap.String("wallet", a.name), zap.Stringer("publicKey", a.publicKey))
	a.Emitter = emitter.New[Event](a.logger.Named("emitter"))
	return a
}

func (a *KeypairAdapter) Name() string {
	return a.name
}

func (a *KeypairAdapter) URL() string {
	return a.url
}

func (a *KeypairAdapter) Icon() string {
	return a.icon
}

func (a *KeypairAdapter) PublicKey() keypair.PublicKey {
	return a.publicKey
}

func (a *KeypairAdapter) ReadyState() ReadyState {
	return Installed
}

// Connecting is always false: the key is already in memory, so Connect completes
// before it returns.
func (a *KeypairAdapter) Connecting() bool {
	return false
}

func (a *KeypairAdapter) Connected() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.connected
}

// Connect marks the adapter connected and emits EventConnect.
// Calling it again while connected emits the event again.
func (a *KeypairAdapter) Connect() error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return ErrAdapterDestroyed
	}
	a.connected = true
	a.mu.Unlock()

	a.logger.Debug("connected")
	a.Emit(EventConnect)
	return nil
}

func (a *KeypairAdapter) Disconnect() error {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return ErrAdapterDestroyed
	}
	a.connected = false
	a.mu.Unlock()

	a.logger.Debug("disconnected")
	a.Emit(EventDisconnect)
	return nil
}

// SignTransaction adds this adapter's signature to tx and returns tx itself.
func (a *KeypairAdapter) SignTransaction(tx Transaction) (Transaction, error) {
	err := a.sign(tx)
	if err != nil {
		a.logger.Error("failed to sign transaction", zap.Error(err))
		a.Emit(EventError, err)
		return tx, err
	}

	return tx, nil
}

// SignAllTransactions signs every transaction independently. The returned slice
// always holds all inputs in their original order; failures are joined into the error.
func (a *KeypairAdapter) SignAllTransactions(txs []Transaction) ([]Transaction, error) {
	signed := make([]Transaction, len(txs))
	var errs []error

	for i, tx := range txs {
		err := a.sign(tx)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "transaction %d", i))
		}
		signed[i] = tx
	}

	err := goerrors.Join(errs...)
	if err != nil {
		a.logger.Error("failed to sign transactions",
			zap.Int("failed", len(errs)),
			zap.Int("total", len(txs)),
			zap.Error(err))
		a.Emit(EventError, err)
	}

	return signed, err
}

func (a *KeypairAdapter) sign(tx Transaction) error {
	a.mu.RLock()
	destroyed := a.destroyed
	a.mu.RUnlock()

	if destroyed {
		return ErrAdapterDestroyed
	}
	if tx == nil {
		return errors.New("transaction is nil")
	}

	return tx.PartialSign(a.keypair)
}

// Destroy drops all listeners, wipes the key and disables the adapter.
// It is used when another adapter takes this one's place.
func (a *KeypairAdapter) Destroy() {
	a.mu.Lock()
	if a.destroyed {
		a.mu.Unlock()
		return
	}
	a.destroyed = true
	a.connected = false
	a.mu.Unlock()

	a.RemoveAllListeners()
	a.keypair.Zero()
	a.logger.Debug("destroyed")
}

func (a *KeypairAdapter) Destroyed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.destroyed
}
