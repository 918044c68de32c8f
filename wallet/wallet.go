package wallet

import (
	"crypto/ed25519"
	"errors"
	"sync"

	"ledger/model"
)

// UTXO pairs an outpoint with the output it denotes, the unit a wallet
// tracks and spends.
type UTXO struct {
	Ref model.Outpoint
	Out model.Output
}

// SpentChecker reports whether a queued candidate already claims an
// outpoint. Satisfied by mempool.Pool.
type SpentChecker interface {
	IsSpent(ref model.Outpoint) bool
}

type Wallet struct {
	Address string

	// local UTXO view (confirmed + unconfirmed change)
	utxos map[model.Outpoint]model.Output
	mu    sync.Mutex
}

func NewWallet(addr string) *Wallet {
	return &Wallet{
		Address: addr,
		utxos:   make(map[model.Outpoint]model.Output),
	}
}

// LoadFromPool seeds the wallet view with the confirmed outputs it owns.
func (w *Wallet) LoadFromPool(pool *model.UTXOPool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	pool.Range(func(ref model.Outpoint, out model.Output) bool {
		if out.Address == w.Address {
			w.utxos[ref] = out
		}
		return true
	})
}

// SpendableOutputs returns the wallet's outputs not yet claimed by any
// queued candidate.
func (w *Wallet) SpendableOutputs(mp SpentChecker) []UTXO {
	w.mu.Lock()
	defer w.mu.Unlock()

	var res []UTXO
	for ref, out := range w.utxos {
		if mp != nil && mp.IsSpent(ref) {
			continue
		}
		res = append(res, UTXO{Ref: ref, Out: out})
	}
	return res
}

// ApplyUnconfirmed updates the local view for a freshly queued transaction:
// spent inputs disappear, change outputs become spendable immediately.
func (w *Wallet) ApplyUnconfirmed(tx *model.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range tx.Vin {
		delete(w.utxos, tx.Vin[i].Outpoint())
	}

	for i, out := range tx.Vout {
		if out.Address == w.Address {
			w.utxos[model.Outpoint{TxID: tx.Txid, Index: i}] = out
		}
	}
}

// CreateTransaction builds and signs a transfer of amount to toAddr, paying
// fee on top. Inputs are picked from the spendable view until they cover
// amount+fee; any remainder returns to the wallet as change.
func (w *Wallet) CreateTransaction(
	priv ed25519.PrivateKey,
	toAddr string,
	amount int64,
	fee int64,
	mp SpentChecker,
) (*model.Transaction, error) {

	if amount <= 0 || fee < 0 {
		return nil, errors.New("invalid amount or fee")
	}

	spendable := w.SpendableOutputs(mp)
	if len(spendable) == 0 {
		return nil, errors.New("no spendable outputs")
	}

	var selected []UTXO
	var total int64
	for _, u := range spendable {
		selected = append(selected, u)
		total += u.Out.Value
		if total >= amount+fee {
			break
		}
	}
	if total < amount+fee {
		return nil, errors.New("insufficient funds")
	}

	vins := make([]model.Input, len(selected))
	for i, u := range selected {
		vins[i] = model.Input{
			Txid: u.Ref.TxID,
			Vout: u.Ref.Index,
		}
	}

	vouts := []model.Output{
		{Value: amount, Address: toAddr},
	}
	if change := total - amount - fee; change > 0 {
		vouts = append(vouts, model.Output{Value: change, Address: w.Address})
	}

	tx := &model.Transaction{
		Version: 1,
		Vin:     vins,
		Vout:    vouts,
	}

	if err := tx.Sign(priv); err != nil {
		return nil, err
	}

	return tx, nil
}
