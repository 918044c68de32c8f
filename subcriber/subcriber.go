package subscriber

import (
	"context"
	"encoding/json"
	"fmt"

	"ledger/events"
	"ledger/mempool"
	"ledger/model"
	"ledger/wallet"

	"cloud.google.com/go/pubsub"
)

// SubscribeTxSubmit ingests fully signed transactions. Only stateless checks
// run here; validity against the pool is decided by the epoch selector.
func SubscribeTxSubmit(
	ctx context.Context,
	sub *pubsub.Subscription,
	mp mempool.Pool,
) error {

	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		defer msg.Ack()

		var req events.TxSubmitRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			fmt.Println("ERROR parsing tx.submit:", err)
			return
		}

		var tx model.Transaction
		if err := json.Unmarshal(req.Raw, &tx); err != nil {
			fmt.Println("ERROR decoding transaction:", err)
			return
		}

		if err := model.CheckStateless(&tx); err != nil {
			fmt.Printf("ERROR rejecting tx %s: %v\n", tx.Txid, err)
			return
		}

		if err := mp.Add(&tx); err != nil {
			fmt.Println("ERROR queueing tx:", err)
			return
		}
	})
}

// SubscribeTransfer builds, signs and queues a transfer on behalf of the
// request's sender.
func SubscribeTransfer(
	ctx context.Context,
	sub *pubsub.Subscription,
	mp mempool.Pool,
	wm *wallet.Manager,
	pool *model.UTXOPool,
) error {

	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		defer msg.Ack()

		var req events.TransferRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			fmt.Println("ERROR parsing tx.transfer:", err)
			return
		}

		priv, err := model.PrivFromSeedHex(req.SeedHex)
		if err != nil {
			fmt.Println("ERROR decoding seed:", err)
			return
		}

		// serialize transfers per sender so two requests cannot pick the
		// same inputs
		mu := wallet.GetAddrLock(req.FromAddr)
		mu.Lock()
		defer mu.Unlock()

		w := wm.GetWallet(req.FromAddr, pool)

		tx, err := w.CreateTransaction(priv, req.ToAddr, req.Amount, req.Fee, mp)
		if err != nil {
			fmt.Println("ERROR creating tx:", err)
			return
		}

		if err := mp.Add(tx); err != nil {
			fmt.Println("ERROR queueing tx:", err)
			return
		}

		wm.ApplyUnconfirmedTx(tx)
	})
}
