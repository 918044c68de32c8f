package model

import (
	"fmt"
	"sort"
	"time"

	"ledger/metrics"
)

// Selector picks a mutually-consistent, fee-maximizing subset of candidate
// transactions and applies it to the pool for one epoch.
//
// Selection is greedy by descending fee. That is a heuristic: when
// candidates conflict over shared inputs it can collect less total fee than
// an exhaustive search, but it is O(n log n) and deterministic.
type Selector struct {
	Validator *Validator
}

func NewSelector(v *Validator) *Selector {
	return &Selector{Validator: v}
}

// SelectAndApply ranks candidates by fee against the pre-epoch pool, then
// scans them in that order, re-validating each against the current, already
// mutated pool. Accepted transactions have their consumed outpoints removed
// and their outputs added under (txid, position). Rejected candidates are
// skipped; the caller may resubmit them in a later epoch.
//
// Fees are computed once, before any mutation. Ties are broken by txid so
// identical input always yields identical output.
//
// A non-nil error means the pool's own bookkeeping broke mid-apply
// (ErrPoolInconsistency); the pool must then be considered corrupted and
// the epoch aborted.
func (s *Selector) SelectAndApply(candidates []*Transaction, pool *UTXOPool) ([]*Transaction, error) {
	start := time.Now()
	defer func() {
		metrics.EpochSelectDuration.
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	type ranked struct {
		tx  *Transaction
		fee int64
	}

	order := make([]ranked, 0, len(candidates))
	for _, tx := range candidates {
		order = append(order, ranked{tx: tx, fee: Fee(tx, pool)})
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].fee != order[j].fee {
			return order[i].fee > order[j].fee
		}
		return order[i].tx.Txid < order[j].tx.Txid
	})

	var accepted []*Transaction

	for _, r := range order {
		tx := r.tx

		if !s.Validator.IsValid(tx, pool) {
			metrics.TxRejected.Inc()
			continue
		}

		for i := range tx.Vin {
			if err := pool.Remove(tx.Vin[i].Outpoint()); err != nil {
				return nil, fmt.Errorf("apply %s: %w", tx.Txid, err)
			}
		}
		for i, out := range tx.Vout {
			if err := pool.Add(Outpoint{TxID: tx.Txid, Index: i}, out); err != nil {
				return nil, fmt.Errorf("apply %s: %w", tx.Txid, err)
			}
		}

		metrics.TxAccepted.Inc()
		accepted = append(accepted, tx)
	}

	return accepted, nil
}
