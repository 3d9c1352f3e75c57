package internal

const (
	ImportedWalletName = "Imported Wallet"
	ImportedWalletURL  = "https://solana.com"
	ImportedWalletIcon = "https://solana.com/favicon.ico"

	BurnerWalletName = "Burner Wallet"
	BurnerWalletURL  = "https://github.com/anza-xyz/wallet-adapter#usage"
	BurnerWalletIcon = "https://solana.com/favicon.ico"
)

const (
	ErrorInvalidKeypairFile = "invalid-keypair-file"
)
