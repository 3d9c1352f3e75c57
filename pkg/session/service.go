package session

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/status-im/status-wallet-go/internal"
	"github.com/status-im/status-wallet-go/internal/logging"
	"github.com/status-im/status-wallet-go/pkg/adapter"
	"github.com/status-im/status-wallet-go/pkg/emitter"
	"github.com/status-im/status-wallet-go/pkg/network"
	"github.com/status-im/status-wallet-go/pkg/transaction"
	"github.com/status-im/status-wallet-go/pkg/wallet"
	"github.com/status-im/status-wallet-go/signal"
)

var (
	errWalletServiceNotStarted = errors.New("wallet service not started")
	errWalletNotSelected       = errors.New("wallet not selected")
	errWalletNotConnected      = errors.New("wallet not connected")
)

// WalletService is the wallet host. Adapter methods are never called while mu is
// held, since adapters call back into the service through their event listeners.
type WalletService struct {
	mu          sync.Mutex
	logger      *zap.Logger
	registry    *wallet.Registry
	network     network.Network
	endpoint    string
	autoConnect bool

	watched       adapter.Adapter
	subscriptions []*emitter.Subscription[adapter.Event]

	errLock   sync.Mutex
	lastError string
}

type StartRequest struct {
	Network     string `json:"network" validate:"omitempty,network"`
	Endpoint    string `json:"endpoint" validate:"omitempty,url"`
	AutoConnect bool   `json:"autoConnect"`
	LogEnabled  bool   `json:"logEnabled"`
	LogFilePath string `json:"logFilePath"`
}

func (s *WalletService) Start(args *StartRequest, reply *struct{}) error {
	err := validateRequest(args)
	if err != nil {
		return err
	}

	if args.LogEnabled {
		logger, err := logging.BuildLogger(true, args.LogFilePath)
		if err != nil {
			return errors.Wrap(err, "failed to initialize log")
		}
		zap.ReplaceGlobals(logger)
	}

	n := network.Default
	if args.Network != "" {
		n, err = network.Parse(args.Network)
		if err != nil {
			return err
		}
	}

	endpoint := args.Endpoint
	if endpoint == "" {
		endpoint, err = network.ClusterAPIURL(n, true)
		if err != nil {
			return err
		}
	}

	err = s.Stop(&struct{}{}, &struct{}{})
	if err != nil {
		return errors.Wrap(err, "failed to stop previous session")
	}

	logger := zap.L().Named("wallet")

	burner, err := adapter.NewBurner(adapter.WithLogger(logger.Named("adapter")))
	if err != nil {
		return errors.Wrap(err, "failed to create burner wallet")
	}

	s.mu.Lock()
	s.logger = logger
	s.registry = wallet.NewRegistry(logger, burner)
	s.network = n
	s.endpoint = endpoint
	s.autoConnect = args.AutoConnect
	s.mu.Unlock()

	s.setLastError("")
	logger.Info("wallet service started",
		zap.String("network", string(n)),
		zap.String("endpoint", endpoint),
		zap.Bool("autoConnect", args.AutoConnect))

	s.publishStatus()
	return nil
}

func (s *WalletService) Stop(args *struct{}, reply *struct{}) error {
	s.mu.Lock()
	registry := s.registry
	logger := s.logger
	s.registry = nil
	s.mu.Unlock()

	if registry == nil {
		return nil
	}

	s.watch(nil)
	if imported := registry.Imported(); imported != nil {
		imported.Destroy()
	}

	logger.Info("wallet service stopped")
	return nil
}

func (s *WalletService) started() (*wallet.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registry == nil {
		return nil, errWalletServiceNotStarted
	}
	return s.registry, nil
}

type Status struct {
	Network    network.Network `json:"network"`
	Endpoint   string          `json:"endpoint"`
	Wallet     string          `json:"wallet,omitempty"`
	PublicKey  string          `json:"publicKey,omitempty"`
	Connecting bool            `json:"connecting"`
	Connected  bool            `json:"connected"`
	Error      string          `json:"error,omitempty"`
}

func (s *WalletService) GetStatus(args *struct{}, reply *Status) error {
	registry, err := s.started()
	if err != nil {
		return err
	}

	*reply = s.status(registry)
	return nil
}

func (s *WalletService) status(registry *wallet.Registry) Status {
	s.mu.Lock()
	status := Status{
		Network:  s.network,
		Endpoint: s.endpoint,
	}
	s.mu.Unlock()

	if w := registry.Selected(); w != nil {
		status.Wallet = w.Name()
		status.Connecting = w.Connecting()
		status.Connected = w.Connected()
		if pk := w.PublicKey(); status.Connected && !pk.IsZero() {
			status.PublicKey = pk.String()
		}
	}

	s.errLock.Lock()
	status.Error = s.lastError
	s.errLock.Unlock()

	return status
}

func (s *WalletService) publishStatus() {
	registry, err := s.started()
	if err != nil {
		return
	}
	signal.Send(signal.StatusChanged, s.status(registry))
}

type ListWalletsResponse struct {
	Wallets  []wallet.Info `json:"wallets"`
	Selected string        `json:"selected,omitempty"`
}

func (s *WalletService) ListWallets(args *struct{}, reply *ListWalletsResponse) error {
	registry, err := s.started()
	if err != nil {
		return err
	}

	reply.Wallets = registry.Infos()
	reply.Selected = registry.SelectedName()
	return nil
}

type ImportWalletRequest struct {
	Keypair string `json:"keypair"`
}

type ImportWalletResponse struct {
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
}

type ImportFailedEvent struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ImportWallet turns the contents of a keypair file into the imported wallet,
// replacing any previously imported one. On failure nothing changes.
func (s *WalletService) ImportWallet(args *ImportWalletRequest, reply *ImportWalletResponse) error {
	registry, err := s.started()
	if err != nil {
		return err
	}

	logger := s.log()

	a, err := adapter.ReadImported(strings.NewReader(args.Keypair), adapter.WithLogger(logger.Named("adapter")))
	if err != nil {
		logger.Error("failed to import wallet", zap.Error(err))
		signal.Send(signal.ImportFailed, ImportFailedEvent{
			Error:   internal.ErrorInvalidKeypairFile,
			Message: err.Error(),
		})
		return err
	}

	registry.SetImported(a)
	s.refreshSelection(registry)

	reply.Name = a.Name()
	reply.PublicKey = a.PublicKey().String()
	return nil
}

type SelectWalletRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *WalletService) SelectWallet(args *SelectWalletRequest, reply *Status) error {
	registry, err := s.started()
	if err != nil {
		return err
	}

	err = validateRequest(args)
	if err != nil {
		return err
	}

	_, err = registry.Select(args.Name)
	if err != nil {
		return err
	}

	s.refreshSelection(registry)
	*reply = s.status(registry)
	return nil
}

func (s *WalletService) Connect(args *struct{}, reply *Status) error {
	registry, w, err := s.selected()
	if err != nil {
		return err
	}

	err = w.Connect()
	if err != nil {
		return err
	}

	*reply = s.status(registry)
	return nil
}

func (s *WalletService) Disconnect(args *struct{}, reply *Status) error {
	registry, w, err := s.selected()
	if err != nil {
		return err
	}

	err = w.Disconnect()
	if err != nil {
		return err
	}

	*reply = s.status(registry)
	return nil
}

type SignTransactionRequest struct {
	Transaction *transaction.Transaction `json:"transaction" validate:"required"`
}

type SignTransactionResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}

func (s *WalletService) SignTransaction(args *SignTransactionRequest, reply *SignTransactionResponse) error {
	w, err := s.connected()
	if err != nil {
		return err
	}

	err = validateRequest(args)
	if err != nil {
		return err
	}

	_, err = w.SignTransaction(args.Transaction)
	if err != nil {
		return err
	}

	reply.Transaction = args.Transaction
	return nil
}

type SignAllTransactionsRequest struct {
	Transactions []*transaction.Transaction `json:"transactions" validate:"required,min=1,dive,required"`
}

type SignAllTransactionsResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Error        string                     `json:"error,omitempty"`
}

// SignAllTransactions signs each transaction independently. Partial failures are
// reported in the reply next to the signed transactions instead of failing the call.
func (s *WalletService) SignAllTransactions(args *SignAllTransactionsRequest, reply *SignAllTransactionsResponse) error {
	w, err := s.connected()
	if err != nil {
		return err
	}

	err = validateRequest(args)
	if err != nil {
		return err
	}

	txs := make([]adapter.Transaction, len(args.Transactions))
	for i, tx := range args.Transactions {
		txs[i] = tx
	}

	_, err = w.SignAllTransactions(txs)
	if err != nil {
		reply.Error = err.Error()
	}

	reply.Transactions = args.Transactions
	return nil
}

func (s *WalletService) selected() (*wallet.Registry, adapter.Adapter, error) {
	registry, err := s.started()
	if err != nil {
		return nil, nil, err
	}

	w := registry.Selected()
	if w == nil {
		return nil, nil, errWalletNotSelected
	}
	return registry, w, nil
}

func (s *WalletService) connected() (adapter.Adapter, error) {
	_, w, err := s.selected()
	if err != nil {
		return nil, err
	}
	if !w.Connected() {
		return nil, errWalletNotConnected
	}
	return w, nil
}

// refreshSelection follows the selected wallet: after a selection change or a
// re-import, the service listens to the adapter now registered under that name.
func (s *WalletService) refreshSelection(registry *wallet.Registry) {
	w := registry.Selected()

	s.mu.Lock()
	changed := w != s.watched
	autoConnect := s.autoConnect
	s.mu.Unlock()

	if !changed {
		return
	}

	s.setLastError("")
	s.watch(w)

	if autoConnect && w != nil && !w.Connected() {
		err := w.Connect()
		if err != nil {
			s.log().Error("failed to auto connect", zap.String("wallet", w.Name()), zap.Error(err))
		}
	}

	s.publishStatus()
}

type WalletEvent struct {
	Name      string `json:"name"`
	PublicKey string `json:"publicKey,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *WalletService) watch(w adapter.Adapter) {
	s.mu.Lock()
	previous := s.watched
	subscriptions := s.subscriptions
	s.watched = w
	s.subscriptions = nil
	s.mu.Unlock()

	if previous != nil {
		for _, sub := range subscriptions {
			previous.Off(sub.Event(), sub)
		}
	}

	if w == nil {
		return
	}

	subscriptions = []*emitter.Subscription[adapter.Event]{
		w.On(adapter.EventConnect, func(args ...interface{}) {
			s.setLastError("")
			signal.Send(signal.Connected, WalletEvent{Name: w.Name(), PublicKey: w.PublicKey().String()})
			s.publishStatus()
		}),
		w.On(adapter.EventDisconnect, func(args ...interface{}) {
			signal.Send(signal.Disconnected, WalletEvent{Name: w.Name()})
			s.publishStatus()
		}),
		w.On(adapter.EventError, func(args ...interface{}) {
			message := "unknown error"
			if len(args) > 0 {
				if err, ok := args[0].(error); ok {
					message = err.Error()
				}
			}
			s.setLastError(message)
			signal.Send(signal.AdapterError, WalletEvent{Name: w.Name(), Error: message})
			s.publishStatus()
		}),
	}

	s.mu.Lock()
	if s.watched == w {
		s.subscriptions = subscriptions
	}
	s.mu.Unlock()
}

func (s *WalletService) setLastError(message string) {
	s.errLock.Lock()
	defer s.errLock.Unlock()
	s.lastError = message
}

func (s *WalletService) log() *zap.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		return zap.L().Named("wallet")
	}
	return s.logger
}
