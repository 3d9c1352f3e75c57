package signal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	var received []byte
	SetSignalHandler(func(data []byte) { received = data })
	defer SetSignalHandler(nil)

	Send(Connected, map[string]string{"name": "Imported Wallet"})

	var envelope struct {
		Type  string            `json:"type"`
		Event map[string]string `json:"event"`
	}
	require.NoError(t, json.Unmarshal(received, &envelope))
	require.Equal(t, Connected, envelope.Type)
	require.Equal(t, "Imported Wallet", envelope.Event["name"])
}

func TestSendSubscribe(t *testing.T) {
	ch := make(chan Envelope, 1)
	sub := Subscribe(ch)
	defer sub.Unsubscribe()

	Send(Disconnected, nil)

	select {
	case envelope := <-ch:
		require.Equal(t, Disconnected, envelope.Type)
		require.Nil(t, envelope.Event)
	case <-time.After(time.Second):
		require.FailNow(t, "signal not delivered")
	}
}

func TestSendUnmarshalable(t *testing.T) {
	called := false
	SetSignalHandler(func(data []byte) { called = true })
	defer SetSignalHandler(nil)

	Send(AdapterError, make(chan int))
	require.False(t, called)
}

func TestSendWithoutReceivers(t *testing.T) {
	SetSignalHandler(nil)
	require.NotPanics(t, func() { Send(StatusChanged, struct{}{}) })
}
