package mempool

import (
	"fmt"
	"testing"

	"ledger/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queuedTx(t *testing.T, n int) *model.Transaction {
	t.Helper()

	priv, _ := model.NewKeyPair()
	tx := &model.Transaction{
		Version: 1,
		Vin: []model.Input{
			{Txid: fmt.Sprintf("%064x", n), Vout: 0},
		},
		Vout: []model.Output{
			{Value: 1, Address: "aa"},
		},
	}
	require.NoError(t, tx.Sign(priv))
	return tx
}

func TestInMemoryAddGet(t *testing.T) {
	mp := NewInMemory()
	tx := queuedTx(t, 1)

	require.NoError(t, mp.Add(tx))
	assert.Equal(t, 1, mp.Size())
	assert.Equal(t, tx, mp.Get(tx.Txid))
	assert.Nil(t, mp.Get("unknown"))
}

func TestInMemoryDuplicateRejected(t *testing.T) {
	mp := NewInMemory()
	tx := queuedTx(t, 1)

	require.NoError(t, mp.Add(tx))
	assert.Error(t, mp.Add(tx))
	assert.Equal(t, 1, mp.Size())
}

func TestInMemorySpentIndex(t *testing.T) {
	mp := NewInMemory()
	tx := queuedTx(t, 1)
	ref := tx.Vin[0].Outpoint()

	assert.False(t, mp.IsSpent(ref))
	require.NoError(t, mp.Add(tx))
	assert.True(t, mp.IsSpent(ref))

	mp.Remove(tx)
	assert.False(t, mp.IsSpent(ref))
	assert.Equal(t, 0, mp.Size())
}

func TestInMemorySnapshotArrivalOrder(t *testing.T) {
	mp := NewInMemory()

	var want []string
	for i := 0; i < 5; i++ {
		tx := queuedTx(t, i)
		require.NoError(t, mp.Add(tx))
		want = append(want, tx.Txid)
	}

	snap := mp.Snapshot()
	require.Len(t, snap, 5)
	for i, tx := range snap {
		assert.Equal(t, want[i], tx.Txid)
	}
}

func TestInMemorySnapshotSkipsRemoved(t *testing.T) {
	mp := NewInMemory()

	first := queuedTx(t, 1)
	second := queuedTx(t, 2)
	require.NoError(t, mp.Add(first))
	require.NoError(t, mp.Add(second))

	mp.Remove(first)

	snap := mp.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, second.Txid, snap[0].Txid)

	// removing again is a no-op
	mp.Remove(first)
	assert.Equal(t, 1, mp.Size())
}
