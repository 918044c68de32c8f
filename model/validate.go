package model

import (
	"errors"
	"fmt"
	"time"

	"ledger/metrics"
)

var (
	ErrMissingOutpoint   = errors.New("input references an outpoint not in the pool")
	ErrBadSignature      = errors.New("authorization proof failed")
	ErrDuplicateOutpoint = errors.New("outpoint claimed by more than one input")
	ErrNegativeValue     = errors.New("negative output value")
	ErrValueNotConserved = errors.New("outputs sum exceeds inputs sum")
)

// Validator decides single-transaction validity against a pool. The
// signature verifier is injected so tests can force success or failure.
type Validator struct {
	Verifier Verifier
}

func NewValidator(v Verifier) *Validator {
	return &Validator{Verifier: v}
}

// Check returns nil when tx is valid against pool, or the first failed rule:
//  1. every claimed outpoint is in the pool
//  2. every input's proof verifies against the referenced owner and the
//     input's signature hash
//  3. no outpoint is claimed twice within tx
//  4. every output value is non-negative
//  5. inputs sum >= outputs sum
//
// Check never mutates the pool.
func (v *Validator) Check(tx *Transaction, pool *UTXOPool) error {
	start := time.Now()
	defer func() {
		metrics.FnDuration.
			WithLabelValues("tx_check_duration").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	claimed := make(map[Outpoint]struct{}, len(tx.Vin))
	inputSum := int64(0)

	for i := range tx.Vin {
		ref := tx.Vin[i].Outpoint()

		prev, ok := pool.Get(ref)
		if !ok {
			return fmt.Errorf("input %d (%s): %w", i, ref.Key(), ErrMissingOutpoint)
		}

		sighash := tx.SignatureHash(i)
		if !v.Verifier.Verify(prev.Address, sighash, tx.Vin[i].Sig, tx.Vin[i].PubKey) {
			return fmt.Errorf("input %d (%s): %w", i, ref.Key(), ErrBadSignature)
		}

		if _, dup := claimed[ref]; dup {
			return fmt.Errorf("input %d (%s): %w", i, ref.Key(), ErrDuplicateOutpoint)
		}
		claimed[ref] = struct{}{}

		inputSum += prev.Value
	}

	outputSum := int64(0)
	for i, out := range tx.Vout {
		if out.Value < 0 {
			return fmt.Errorf("output %d: %w", i, ErrNegativeValue)
		}
		outputSum += out.Value
	}

	if inputSum < outputSum {
		return fmt.Errorf("in=%d out=%d: %w", inputSum, outputSum, ErrValueNotConserved)
	}

	return nil
}

// IsValid collapses all validity failures into false.
func (v *Validator) IsValid(tx *Transaction, pool *UTXOPool) bool {
	return v.Check(tx, pool) == nil
}

// Fee is the ranking signal for epoch ordering: the sum of input values
// currently present in the pool minus the sum of output values. A reference
// missing from the pool contributes zero instead of failing, because fees
// are computed over candidates that may not survive full validation.
func Fee(tx *Transaction, pool *UTXOPool) int64 {
	inputSum := int64(0)
	for i := range tx.Vin {
		if prev, ok := pool.Get(tx.Vin[i].Outpoint()); ok {
			inputSum += prev.Value
		}
	}
	outputSum := int64(0)
	for _, out := range tx.Vout {
		outputSum += out.Value
	}
	return inputSum - outputSum
}
