package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClusterAPIURL(t *testing.T) {
	tests := []struct {
		network  Network
		tls      bool
		expected string
	}{
		{Devnet, true, "https://api.devnet.solana.com"},
		{Testnet, true, "https://api.testnet.solana.com"},
		{MainnetBeta, true, "https://api.mainnet-beta.solana.com"},
		{Devnet, false, "http://api.devnet.solana.com"},
	}

	for _, tt := range tests {
		url, err := ClusterAPIURL(tt.network, tt.tls)
		require.NoError(t, err)
		require.Equal(t, tt.expected, url)
	}
}

func TestClusterAPIURLUnknown(t *testing.T) {
	_, err := ClusterAPIURL("localnet", true)
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestParse(t *testing.T) {
	n, err := Parse("mainnet-beta")
	require.NoError(t, err)
	require.Equal(t, MainnetBeta, n)

	_, err = Parse("Devnet")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}
