package adapter

import (
	"github.com/status-im/status-wallet-go/pkg/emitter"
	"github.com/status-im/status-wallet-go/pkg/keypair"
	"github.com/status-im/status-wallet-go/pkg/transaction"
)

type Event string

const (
	EventConnect    Event = "connect"
	EventDisconnect Event = "disconnect"
	EventError      Event = "error"
)

type ReadyState string

const (
	Installed   ReadyState = "Installed"
	NotDetected ReadyState = "NotDetected"
	Loadable    ReadyState = "Loadable"
	Unsupported ReadyState = "Unsupported"
)

// Transaction is anything that can collect partial signatures.
type Transaction interface {
	PartialSign(signers ...transaction.Signer) error
}

// Adapter is the capability set a wallet host relies on, regardless of where the
// key lives.
type Adapter interface {
	Name() string
	URL() string
	Icon() string
	PublicKey() keypair.PublicKey
	ReadyState() ReadyState
	Connecting() bool
	Connected() bool

	Connect() error
	Disconnect() error
	SignTransaction(tx Transaction) (Transaction, error)
	SignAllTransactions(txs []Transaction) ([]Transaction, error)

	On(event Event, listener emitter.Listener) *emitter.Subscription[Event]
	Off(event Event, sub *emitter.Subscription[Event])
	Emit(event Event, args ...interface{}) bool
}
