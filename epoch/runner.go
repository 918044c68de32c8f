package epoch

import (
	"context"
	"fmt"
	"time"

	"ledger/events"
	"ledger/mempool"
	"ledger/metrics"
	"ledger/model"
	"ledger/store"

	"github.com/dgraph-io/badger/v4"
)

const (
	EpochInterval  = 5 * time.Second
	RunnerIdleTick = 100 * time.Millisecond
)

// Publisher announces epoch outcomes. Implemented by pubsub2.PubSubClient;
// nil disables publishing.
type Publisher interface {
	PublishEpochResult(ctx context.Context, msg events.EpochResult) error
}

// Runner drives epochs: it snapshots the mempool, runs selection against
// the canonical pool, persists the mutations and drops the accepted
// candidates. One Runner owns the pool; epochs are serialized by the single
// loop goroutine.
type Runner struct {
	Pool      *model.UTXOPool
	Mempool   mempool.Pool
	DB        *badger.DB
	Selector  *model.Selector
	Publisher Publisher

	stopCh chan struct{}
}

func NewRunner(
	pool *model.UTXOPool,
	mp mempool.Pool,
	db *badger.DB,
	sel *model.Selector,
	pub Publisher,
) *Runner {
	return &Runner{
		Pool:      pool,
		Mempool:   mp,
		DB:        db,
		Selector:  sel,
		Publisher: pub,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the epoch loop in a goroutine. A pool inconsistency stops the
// loop: the in-memory pool can no longer be trusted.
func (r *Runner) Start() {
	fmt.Println("[epoch] runner started")

	go func() {
		ticker := time.NewTicker(RunnerIdleTick)
		defer ticker.Stop()

		epochStart := time.Now()

		for {
			select {
			case <-r.stopCh:
				fmt.Println("[epoch] runner stopped")
				return

			case <-ticker.C:
				if r.Mempool.Size() == 0 {
					epochStart = time.Now()
					continue
				}

				if time.Since(epochStart) < EpochInterval {
					continue
				}

				if err := r.RunEpoch(); err != nil {
					fmt.Println("[epoch] FATAL:", err)
					return
				}

				epochStart = time.Now()
			}
		}
	}()
}

// RunEpoch processes one epoch end to end. The returned error is
// defect-class (pool or store inconsistency), never a mere rejection.
func (r *Runner) RunEpoch() error {
	candidates := r.Mempool.Snapshot()
	if len(candidates) == 0 {
		return nil
	}

	start := time.Now()

	accepted, err := r.Selector.SelectAndApply(candidates, r.Pool)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	if r.DB != nil {
		if err := store.CommitEpoch(r.DB, accepted); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
	}

	for _, tx := range accepted {
		r.Mempool.Remove(tx)
	}

	metrics.PoolSize.Set(float64(r.Pool.Len()))
	metrics.MempoolSize.Set(float64(r.Mempool.Size()))

	rejected := len(candidates) - len(accepted)
	fmt.Printf(
		"[epoch] committed | candidates=%d accepted=%d rejected=%d pool=%d time=%v\n",
		len(candidates),
		len(accepted),
		rejected,
		r.Pool.Len(),
		time.Since(start),
	)

	if r.Publisher != nil {
		txids := make([]string, len(accepted))
		for i, tx := range accepted {
			txids[i] = tx.Txid
		}
		res := events.EpochResult{
			Accepted: txids,
			Rejected: rejected,
			PoolSize: r.Pool.Len(),
		}
		if err := r.Publisher.PublishEpochResult(context.Background(), res); err != nil {
			// announcement failure does not invalidate the epoch
			fmt.Println("[epoch] publish result failed:", err)
		}
	}

	return nil
}

func (r *Runner) Stop() {
	close(r.stopCh)
}
