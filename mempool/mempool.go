package mempool

import (
	"fmt"
	"sync"
	"time"

	"ledger/metrics"
	"ledger/model"
)

// Pool holds candidate transactions between epochs. The epoch driver takes
// a Snapshot, runs selection, then removes what was accepted; everything
// else stays queued for the next epoch.
type Pool interface {
	Add(tx *model.Transaction) error
	Remove(tx *model.Transaction)
	Get(txid string) *model.Transaction
	// Snapshot returns candidates in arrival order. The order is stable so
	// selection over the same snapshot is deterministic.
	Snapshot() []*model.Transaction
	// IsSpent reports whether some queued candidate already claims ref.
	IsSpent(ref model.Outpoint) bool
	Size() int
}

type InMemory struct {
	mu sync.RWMutex

	// txid -> Transaction
	txs map[string]*model.Transaction

	// spent map: outpoint -> claiming txid
	spent map[model.Outpoint]string

	// ordered txids (arrival order)
	order []string
}

func NewInMemory() *InMemory {
	return &InMemory{
		txs:   make(map[string]*model.Transaction),
		spent: make(map[model.Outpoint]string),
		order: []string{},
	}
}

func (m *InMemory) Add(tx *model.Transaction) error {
	start := time.Now()
	defer metrics.ObserveDuration(metrics.MempoolAddDuration, start)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txs[tx.Txid]; ok {
		return fmt.Errorf("tx %s already exists", tx.Txid)
	}

	m.txs[tx.Txid] = tx
	m.order = append(m.order, tx.Txid)

	for i := range tx.Vin {
		m.spent[tx.Vin[i].Outpoint()] = tx.Txid
	}

	metrics.MempoolSize.Set(float64(len(m.txs)))
	return nil
}

func (m *InMemory) Remove(tx *model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.txs[tx.Txid]; !ok {
		return
	}
	delete(m.txs, tx.Txid)

	for i := range tx.Vin {
		ref := tx.Vin[i].Outpoint()
		if m.spent[ref] == tx.Txid {
			delete(m.spent, ref)
		}
	}

	// order is compacted lazily in Snapshot
	metrics.MempoolSize.Set(float64(len(m.txs)))
}

func (m *InMemory) Get(txid string) *model.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.txs[txid]
}

func (m *InMemory) Snapshot() []*model.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*model.Transaction, 0, len(m.txs))
	live := m.order[:0]
	for _, txid := range m.order {
		tx, ok := m.txs[txid]
		if !ok {
			continue
		}
		live = append(live, txid)
		res = append(res, tx)
	}
	m.order = live
	return res
}

func (m *InMemory) IsSpent(ref model.Outpoint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.spent[ref]
	return ok
}

func (m *InMemory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}
