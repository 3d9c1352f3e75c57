package wallet

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/status-im/status-wallet-go/pkg/adapter"
	"github.com/status-im/status-wallet-go/signal"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
)

type Info struct {
	Name       string             `json:"name"`
	URL        string             `json:"url"`
	Icon       string             `json:"icon"`
	ReadyState adapter.ReadyState `json:"readyState"`
	PublicKey  string             `json:"publicKey,omitempty"`
	Connected  bool               `json:"connected"`
	Imported   bool               `json:"imported"`
}

// Registry is the ordered list of adapters offered to the user: the built-in
// adapters followed by at most one imported adapter.
type Registry struct {
	mu       sync.RWMutex
	builtin  []adapter.Adapter
	imported *adapter.KeypairAdapter
	selected string
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger, builtin ...adapter.Adapter) *Registry {
	if logger == nil {
		logger = zap.L()
	}
	return &Registry{
		builtin: builtin,
		logger:  logger.Named("registry"),
	}
}

func (r *Registry) Wallets() []adapter.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.walletsLocked()
}

func (r *Registry) walletsLocked() []adapter.Adapter {
	wallets := make([]adapter.Adapter, 0, len(r.builtin)+1)
	wallets = append(wallets, r.builtin...)
	if r.imported != nil {
		wallets = append(wallets, r.imported)
	}
	return wallets
}

func (r *Registry) Infos() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := r.walletsLocked()
	infos := make([]Info, len(wallets))
	for i, w := range wallets {
		infos[i] = Info{
			Name:       w.Name(),
			URL:        w.URL(),
			Icon:       w.Icon(),
			ReadyState: w.ReadyState(),
			Connected:  w.Connected(),
			Imported:   w == adapter.Adapter(r.imported),
		}
		if pk := w.PublicKey(); !pk.IsZero() {
			infos[i].PublicKey = pk.String()
		}
	}
	return infos
}

func (r *Registry) Imported() *adapter.KeypairAdapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.imported
}

// SetImported puts a into the imported slot. The adapter it replaces is destroyed,
// so none of its listeners or connection state survive.
func (r *Registry) SetImported(a *adapter.KeypairAdapter) {
	r.mu.Lock()
	previous := r.imported
	r.imported = a
	r.mu.Unlock()

	if previous != nil && previous != a {
		r.logger.Info("replacing imported wallet", zap.Stringer("previous", previous.PublicKey()))
		previous.Destroy()
	}

	if a != nil {
		r.logger.Info("imported wallet registered", zap.Stringer("publicKey", a.PublicKey()))
	}

	signal.Send(signal.WalletsChanged, r.Infos())
}

func (r *Registry) Select(name string) (adapter.Adapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.findLocked(name)
	if w == nil {
		return nil, errors.Wrap(ErrWalletNotFound, name)
	}

	r.selected = w.Name()
	return w, nil
}

// Selected returns the adapter currently registered under the selected name.
// After a re-import this is the new adapter, not the destroyed one.
func (r *Registry) Selected() adapter.Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.selected == "" {
		return nil
	}
	return r.findLocked(r.selected)
}

func (r *Registry) SelectedName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

func (r *Registry) Deselect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = ""
}

func (r *Registry) findLocked(name string) adapter.Adapter {
	key := normalizeName(name)
	for _, w := range r.walletsLocked() {
		if normalizeName(w.Name()) == key {
			return w
		}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(name)))
}
