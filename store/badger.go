package store

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"ledger/helper"
	"ledger/metrics"
	"ledger/model"

	badger "github.com/dgraph-io/badger/v4"
)

// The store keeps a durable copy of the spendable output pool in Badger.
// The daemon loads it into a model.UTXOPool at startup and writes back the
// mutations of each epoch after selection.

func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil)
	return badger.Open(opts)
}

func utxoKey(ref model.Outpoint) []byte {
	return []byte("utxo:" + ref.Key())
}

func encodeOutput(out model.Output) ([]byte, error) {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, uint64(out.Value))

	addrBytes, err := hex.DecodeString(out.Address)
	if err != nil {
		return nil, err
	}
	binary.Write(buf, binary.LittleEndian, uint16(len(addrBytes)))
	buf.Write(addrBytes)

	return buf.Bytes(), nil
}

func decodeOutput(data []byte) (model.Output, error) {
	buf := bytes.NewReader(data)
	var out model.Output

	var value uint64
	if err := binary.Read(buf, binary.LittleEndian, &value); err != nil {
		return out, err
	}
	out.Value = int64(value)

	var addrLen uint16
	if err := binary.Read(buf, binary.LittleEndian, &addrLen); err != nil {
		return out, err
	}
	addrBytes := make([]byte, addrLen)
	if _, err := buf.Read(addrBytes); err != nil {
		return out, err
	}
	out.Address = hex.EncodeToString(addrBytes)

	return out, nil
}

// PutOutput writes a single entry, used for genesis seeding.
func PutOutput(db *badger.DB, ref model.Outpoint, out model.Output) error {
	val, err := encodeOutput(out)
	if err != nil {
		return err
	}
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(utxoKey(ref), val)
	})
}

// LoadPool scans every stored entry into a fresh pool.
func LoadPool(db *badger.DB) (*model.UTXOPool, error) {
	pool := model.NewUTXOPool()

	err := db.View(func(txn *badger.Txn) error {
		prefix := []byte("utxo:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)

			err := item.Value(func(val []byte) error {
				out, err := decodeOutput(val)
				if err != nil {
					return err
				}

				txid, idx := helper.ParseUTXOKey(key)
				return pool.Add(model.Outpoint{TxID: txid, Index: idx}, out)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// CommitEpoch persists the pool mutations of one epoch's accepted
// transactions in a single WriteBatch: spent outpoints are deleted, produced
// outputs are written under (txid, position).
func CommitEpoch(db *badger.DB, accepted []*model.Transaction) error {
	start := time.Now()
	defer metrics.ObserveDuration(metrics.EpochCommitDuration, start)

	batch := db.NewWriteBatch()
	defer batch.Cancel()

	for _, tx := range accepted {
		for i := range tx.Vin {
			if err := batch.Delete(utxoKey(tx.Vin[i].Outpoint())); err != nil {
				return err
			}
		}

		for i, out := range tx.Vout {
			val, err := encodeOutput(out)
			if err != nil {
				return fmt.Errorf("encode %s[%d]: %w", tx.Txid, i, err)
			}
			ref := model.Outpoint{TxID: tx.Txid, Index: i}
			if err := batch.Set(utxoKey(ref), val); err != nil {
				return err
			}
		}
	}

	return batch.Flush()
}
