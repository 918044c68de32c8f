package main

import (
	"context"
	"fmt"
	"log"

	"ledger/mempool"
	"ledger/model"
	pubsub2 "ledger/pubsub"
	"ledger/store"
	subscriber "ledger/subcriber"
	"ledger/wallet"
)

// Ingestion consumer: receives transfer and submit events from Pub/Sub and
// queues candidates in a shared Redis mempool for the epoch daemon.
func main() {
	ctx := context.Background()

	db, err := store.Open("./data/utxo")
	if err != nil {
		log.Fatal("Open Badger failed:", err)
	}
	defer db.Close()

	pool, err := store.LoadPool(db)
	if err != nil {
		log.Fatal("Load pool from DB failed:", err)
	}
	fmt.Println("Loaded", pool.Len(), "spendable outputs from DB")

	mp := mempool.NewRedis("localhost:6379")
	defer mp.Close()

	walletManager := wallet.NewManager()

	_, alicePub := model.NewKeyPair()
	aliceAddr := model.AddressFromPub(alicePub)

	if pool.Len() == 0 {
		fmt.Println("\n== Insert genesis output ==")

		genesis := &model.Transaction{
			Version: 1,
			Vout: []model.Output{
				{Value: 500000, Address: aliceAddr},
			},
		}
		genesis.Txid = genesis.ComputeTxID()

		for i, out := range genesis.Vout {
			ref := model.Outpoint{TxID: genesis.Txid, Index: i}
			if err := pool.Add(ref, out); err != nil {
				log.Fatal("Insert genesis output failed:", err)
			}
			if err := store.PutOutput(db, ref, out); err != nil {
				log.Fatal("Insert genesis output failed:", err)
			}
		}
	}

	ps, err := pubsub2.NewPubSubClient(ctx, "ledger")
	if err != nil {
		log.Fatal("Failed creating PubSub client:", err)
	}

	transferSub := ps.Client.Subscription("tx-transfer-sub")
	submitSub := ps.Client.Subscription("tx-submit-sub")

	go func() {
		if err := subscriber.SubscribeTxSubmit(ctx, submitSub, mp); err != nil {
			log.Println("SubscribeTxSubmit error:", err)
		}
	}()

	if err := subscriber.SubscribeTransfer(ctx, transferSub, mp, walletManager, pool); err != nil {
		log.Println("SubscribeTransfer error:", err)
	}
}
