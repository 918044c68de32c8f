package wallet

import (
	"sync"

	"ledger/model"
)

type Manager struct {
	mu      sync.Mutex
	Wallets map[string]*Wallet
}

func NewManager() *Manager {
	return &Manager{
		Wallets: make(map[string]*Wallet),
	}
}

// GetWallet returns the wallet for addr, creating it and seeding its view
// from the pool on first use.
func (wm *Manager) GetWallet(addr string, pool *model.UTXOPool) *Wallet {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	if w, ok := wm.Wallets[addr]; ok {
		return w
	}

	w := NewWallet(addr)
	w.LoadFromPool(pool)
	wm.Wallets[addr] = w
	return w
}

// ApplyUnconfirmedTx propagates a freshly queued transaction to every
// tracked wallet, so senders lose the inputs and receivers see the outputs.
func (wm *Manager) ApplyUnconfirmedTx(tx *model.Transaction) {
	wm.mu.Lock()
	defer wm.mu.Unlock()

	for _, w := range wm.Wallets {
		w.ApplyUnconfirmed(tx)
	}
}
