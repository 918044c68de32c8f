package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutpoint(n int) Outpoint {
	return Outpoint{TxID: fmt.Sprintf("%064x", n), Index: 0}
}

func TestPoolAddGetRemove(t *testing.T) {
	pool := NewUTXOPool()
	ref := testOutpoint(1)
	out := Output{Value: 10, Address: "aa"}

	assert.Equal(t, 0, pool.Len())
	assert.False(t, pool.Contains(ref))

	require.NoError(t, pool.Add(ref, out))
	assert.True(t, pool.Contains(ref))
	assert.Equal(t, 1, pool.Len())

	got, ok := pool.Get(ref)
	require.True(t, ok)
	assert.Equal(t, out, got)

	require.NoError(t, pool.Remove(ref))
	assert.False(t, pool.Contains(ref))
	assert.Equal(t, 0, pool.Len())
}

func TestPoolAddIdempotentOverwrite(t *testing.T) {
	pool := NewUTXOPool()
	ref := testOutpoint(1)
	out := Output{Value: 10, Address: "aa"}

	require.NoError(t, pool.Add(ref, out))
	require.NoError(t, pool.Add(ref, out))
	assert.Equal(t, 1, pool.Len())
}

func TestPoolAddConflictIsInconsistency(t *testing.T) {
	pool := NewUTXOPool()
	ref := testOutpoint(1)

	require.NoError(t, pool.Add(ref, Output{Value: 10, Address: "aa"}))

	err := pool.Add(ref, Output{Value: 11, Address: "aa"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPoolInconsistency)

	// original entry survives
	got, ok := pool.Get(ref)
	require.True(t, ok)
	assert.Equal(t, int64(10), got.Value)
}

func TestPoolRemoveAbsentIsInconsistency(t *testing.T) {
	pool := NewUTXOPool()

	err := pool.Remove(testOutpoint(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPoolInconsistency)
}

func TestPoolCloneIsIndependent(t *testing.T) {
	pool := NewUTXOPool()
	ref1 := testOutpoint(1)
	ref2 := testOutpoint(2)
	require.NoError(t, pool.Add(ref1, Output{Value: 10, Address: "aa"}))

	cp := pool.Clone()
	require.Equal(t, 1, cp.Len())

	// mutate the copy
	require.NoError(t, cp.Remove(ref1))
	require.NoError(t, cp.Add(ref2, Output{Value: 20, Address: "bb"}))

	assert.True(t, pool.Contains(ref1))
	assert.False(t, pool.Contains(ref2))

	// mutate the original
	require.NoError(t, pool.Add(ref2, Output{Value: 30, Address: "cc"}))
	got, ok := cp.Get(ref2)
	require.True(t, ok)
	assert.Equal(t, int64(20), got.Value)
}

func TestPoolRange(t *testing.T) {
	pool := NewUTXOPool()
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Add(testOutpoint(i), Output{Value: int64(i), Address: "aa"}))
	}

	seen := make(map[Outpoint]bool)
	pool.Range(func(ref Outpoint, out Output) bool {
		seen[ref] = true
		return true
	})
	assert.Len(t, seen, 5)

	// early stop
	count := 0
	pool.Range(func(ref Outpoint, out Output) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}
