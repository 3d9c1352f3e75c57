package network

import (
	"fmt"

	"github.com/pkg/errors"
)

type Network string

const (
	Devnet      Network = "devnet"
	Testnet     Network = "testnet"
	MainnetBeta Network = "mainnet-beta"

	Default = Devnet
)

var (
	ErrUnknownNetwork = errors.New("unknown network")
)

func All() []Network {
	return []Network{Devnet, Testnet, MainnetBeta}
}

func Parse(name string) (Network, error) {
	for _, n := range All() {
		if string(n) == name {
			return n, nil
		}
	}
	return "", errors.Wrap(ErrUnknownNetwork, name)
}

// ClusterAPIURL returns the public RPC endpoint of the network.
func ClusterAPIURL(n Network, tls bool) (string, error) {
	if _, err := Parse(string(n)); err != nil {
		return "", err
	}

	scheme := "http"
	if tls {
		scheme = "https"
	}

	return fmt.Sprintf("%s://api.%s.solana.com", scheme, n), nil
}
