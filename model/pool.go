package model

import (
	"errors"
	"fmt"
)

// ErrPoolInconsistency marks a defect-class failure: the caller removed an
// absent entry or re-added an entry with different content. It means the
// selector's own bookkeeping is broken, so the epoch must abort instead of
// continuing on a corrupted pool.
var ErrPoolInconsistency = errors.New("utxo pool inconsistency")

// UTXOPool is the set of spendable outputs: a mapping from outpoint to the
// output it denotes. An outpoint is present iff some transaction created it
// and no accepted transaction has consumed it yet.
//
// A pool is owned by one epoch at a time and is not safe for concurrent
// mutation; callers needing a read-only view take a Clone.
type UTXOPool struct {
	utxos map[Outpoint]Output
}

func NewUTXOPool() *UTXOPool {
	return &UTXOPool{
		utxos: make(map[Outpoint]Output),
	}
}

// Clone returns an independent deep copy. Mutating either pool never
// affects the other.
func (p *UTXOPool) Clone() *UTXOPool {
	cp := make(map[Outpoint]Output, len(p.utxos))
	for ref, out := range p.utxos {
		cp[ref] = out
	}
	return &UTXOPool{utxos: cp}
}

func (p *UTXOPool) Contains(ref Outpoint) bool {
	_, ok := p.utxos[ref]
	return ok
}

func (p *UTXOPool) Get(ref Outpoint) (Output, bool) {
	out, ok := p.utxos[ref]
	return out, ok
}

// Add inserts an output. Re-adding the same content is an idempotent
// overwrite; a collision with different content is a pool inconsistency.
func (p *UTXOPool) Add(ref Outpoint, out Output) error {
	if existing, ok := p.utxos[ref]; ok && existing != out {
		return fmt.Errorf("%w: conflicting add for %s", ErrPoolInconsistency, ref.Key())
	}
	p.utxos[ref] = out
	return nil
}

// Remove deletes an entry. Removing an absent entry is a pool inconsistency:
// only the selector removes entries, and it only removes what it just
// validated as present.
func (p *UTXOPool) Remove(ref Outpoint) error {
	if _, ok := p.utxos[ref]; !ok {
		return fmt.Errorf("%w: remove of absent %s", ErrPoolInconsistency, ref.Key())
	}
	delete(p.utxos, ref)
	return nil
}

func (p *UTXOPool) Len() int {
	return len(p.utxos)
}

// Range calls fn for every entry until fn returns false. Iteration order is
// not significant.
func (p *UTXOPool) Range(fn func(ref Outpoint, out Output) bool) {
	for ref, out := range p.utxos {
		if !fn(ref, out) {
			return
		}
	}
}
