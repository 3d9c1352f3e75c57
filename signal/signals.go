package signal

import (
	"encoding/json"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"
)

const (
	StatusChanged  = "wallet.status-changed"
	WalletsChanged = "wallet.wallets-changed"
	Connected      = "wallet.connect"
	Disconnected   = "wallet.disconnect"
	AdapterError   = "wallet.error"
	ImportFailed   = "wallet.import-failed"
)

type Envelope struct {
	Type  string      `json:"type"`
	Event interface{} `json:"event"`
}

type SignalHandler func([]byte)

var (
	handlerLock sync.RWMutex
	handler     SignalHandler
	feed        event.Feed
)

// SetSignalHandler registers the callback that receives every signal as JSON.
// Passing nil removes it.
func SetSignalHandler(h SignalHandler) {
	handlerLock.Lock()
	defer handlerLock.Unlock()
	handler = h
}

// Subscribe delivers every signal envelope to ch until the subscription is closed.
// Send blocks until all subscribers received the envelope, so ch must be drained.
func Subscribe(ch chan<- Envelope) event.Subscription {
	return feed.Subscribe(ch)
}

func Send(typ string, event interface{}) {
	envelope := Envelope{Type: typ, Event: event}

	data, err := json.Marshal(envelope)
	if err != nil {
		zap.L().Named("signal").Error("failed to marshal signal", zap.String("type", typ), zap.Error(err))
		return
	}

	handlerLock.RLock()
	h := handler
	handlerLock.RUnlock()

	if h != nil {
		h(data)
	}

	feed.Send(envelope)
}
