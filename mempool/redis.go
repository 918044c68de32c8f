package mempool

import (
	"context"
	"encoding/json"
	"fmt"

	"ledger/model"

	"github.com/redis/go-redis/v9"
)

// Redis is a Pool backed by a Redis instance, so ingestion consumers and
// the epoch driver can share one candidate queue across processes.
type Redis struct {
	ctx context.Context
	rdb *redis.Client
}

func NewRedis(addr string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		ctx: context.Background(),
		rdb: rdb,
	}
}

func (m *Redis) Close() error {
	return m.rdb.Close()
}

// ---------- key helpers ----------

func mempoolTxKey(txid string) string {
	return fmt.Sprintf("mempool:tx:%s", txid)
}

func mempoolSpentKey(ref model.Outpoint) string {
	return fmt.Sprintf("mempool:spent:%s", ref.Key())
}

const mempoolOrderKey = "mempool:order"

func (m *Redis) Add(tx *model.Transaction) error {
	exists, err := m.rdb.Exists(m.ctx, mempoolTxKey(tx.Txid)).Result()
	if err != nil {
		return err
	}
	if exists == 1 {
		return fmt.Errorf("tx %s already exists", tx.Txid)
	}

	pipe := m.rdb.TxPipeline()

	rawTx, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	pipe.Set(m.ctx, mempoolTxKey(tx.Txid), rawTx, 0)
	pipe.RPush(m.ctx, mempoolOrderKey, tx.Txid)

	// mark inputs as claimed
	for i := range tx.Vin {
		pipe.Set(m.ctx, mempoolSpentKey(tx.Vin[i].Outpoint()), tx.Txid, 0)
	}

	_, err = pipe.Exec(m.ctx)
	return err
}

func (m *Redis) Remove(tx *model.Transaction) {
	pipe := m.rdb.TxPipeline()

	pipe.Del(m.ctx, mempoolTxKey(tx.Txid))
	pipe.LRem(m.ctx, mempoolOrderKey, 1, tx.Txid)

	for i := range tx.Vin {
		pipe.Del(m.ctx, mempoolSpentKey(tx.Vin[i].Outpoint()))
	}

	_, _ = pipe.Exec(m.ctx)
}

func (m *Redis) Get(txid string) *model.Transaction {
	raw, err := m.rdb.Get(m.ctx, mempoolTxKey(txid)).Bytes()
	if err != nil {
		return nil
	}

	var tx model.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil
	}
	return &tx
}

func (m *Redis) Snapshot() []*model.Transaction {
	txids, err := m.rdb.LRange(m.ctx, mempoolOrderKey, 0, -1).Result()
	if err != nil {
		return nil
	}

	var res []*model.Transaction
	for _, txid := range txids {
		tx := m.Get(txid)
		if tx == nil {
			continue
		}
		res = append(res, tx)
	}
	return res
}

func (m *Redis) IsSpent(ref model.Outpoint) bool {
	exists, _ := m.rdb.Exists(m.ctx, mempoolSpentKey(ref)).Result()
	return exists == 1
}

func (m *Redis) Size() int {
	n, _ := m.rdb.LLen(m.ctx, mempoolOrderKey).Result()
	return int(n)
}
