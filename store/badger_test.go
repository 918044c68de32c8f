package store

import (
	"fmt"
	"testing"

	"ledger/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutOutputLoadPoolRoundtrip(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ref := model.Outpoint{TxID: fmt.Sprintf("%064x", 1), Index: 2}
	out := model.Output{Value: 12345, Address: "ab12cd34ab12cd34ab12cd34ab12cd34ab12cd34"}

	require.NoError(t, PutOutput(db, ref, out))

	pool, err := LoadPool(db)
	require.NoError(t, err)

	require.Equal(t, 1, pool.Len())
	got, ok := pool.Get(ref)
	require.True(t, ok)
	assert.Equal(t, out, got)
}

func TestLoadPoolEmpty(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	pool, err := LoadPool(db)
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Len())
}

func TestCommitEpochAppliesMutations(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	priv, pub := model.NewKeyPair()
	addr := model.AddressFromPub(pub)

	ref := model.Outpoint{TxID: fmt.Sprintf("%064x", 10), Index: 0}
	require.NoError(t, PutOutput(db, ref, model.Output{Value: 10, Address: addr}))

	tx := &model.Transaction{
		Version: 1,
		Vin:     []model.Input{{Txid: ref.TxID, Vout: ref.Index}},
		Vout: []model.Output{
			{Value: 7, Address: "bb00bb00bb00bb00bb00bb00bb00bb00bb00bb00"},
		},
	}
	require.NoError(t, tx.Sign(priv))

	require.NoError(t, CommitEpoch(db, []*model.Transaction{tx}))

	pool, err := LoadPool(db)
	require.NoError(t, err)

	assert.False(t, pool.Contains(ref))
	got, ok := pool.Get(model.Outpoint{TxID: tx.Txid, Index: 0})
	require.True(t, ok)
	assert.Equal(t, int64(7), got.Value)
	assert.Equal(t, 1, pool.Len())
}

func TestEncodeDecodeOutput(t *testing.T) {
	out := model.Output{Value: 98765, Address: "deadbeef"}

	data, err := encodeOutput(out)
	require.NoError(t, err)

	got, err := decodeOutput(data)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	_, err = encodeOutput(model.Output{Value: 1, Address: "not-hex"})
	assert.Error(t, err)
}
