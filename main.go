package main

import (
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"ledger/epoch"
	"ledger/mempool"
	"ledger/metrics"
	"ledger/model"
	"ledger/store"
	"ledger/wallet"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	fmt.Println("=== UTXO Ledger Demo (In-Memory Pool + BadgerDB + Epoch Selector) ===")

	// -------------------------------
	// 1) OPEN BADGER DB
	// -------------------------------
	db, err := store.Open("./data/utxo")
	if err != nil {
		log.Fatal("Open Badger failed:", err)
	}
	defer db.Close()

	// -------------------------------
	// 2) LOAD POOL FROM DB
	// -------------------------------
	pool, err := store.LoadPool(db)
	if err != nil {
		log.Fatal("Load pool from DB failed:", err)
	}

	fmt.Println("Loaded", pool.Len(), "spendable outputs from DB")

	// -------------------------------
	// 3) INIT IN-MEMORY STATE
	// -------------------------------
	mp := mempool.NewInMemory()
	walletManager := wallet.NewManager()
	validator := model.NewValidator(model.Ed25519Verifier{})
	selector := model.NewSelector(validator)

	metrics.Register()
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":2112", nil); err != nil {
			log.Println("metrics server:", err)
		}
	}()

	// -------------------------------
	// 4) CREATE KEYS
	// -------------------------------
	_, alicePub := model.NewKeyPair()
	bobPriv, bobPub := model.NewKeyPair()

	aliceAddr := model.AddressFromPub(alicePub)
	bobAddr := model.AddressFromPub(bobPub)

	fmt.Println("Alice Address:", aliceAddr)
	fmt.Println("Bob   Address:", bobAddr)

	// -------------------------------
	// 5) GENESIS (ONLY IF DB EMPTY)
	// -------------------------------
	if pool.Len() == 0 {
		fmt.Println("\n== Insert genesis outputs ==")

		genesis := &model.Transaction{
			Version: 1,
			Vout: []model.Output{
				{Value: 500000, Address: aliceAddr},
				{Value: 10000000, Address: bobAddr},
			},
		}
		genesis.Txid = genesis.ComputeTxID()

		for i, out := range genesis.Vout {
			ref := model.Outpoint{TxID: genesis.Txid, Index: i}
			if err := pool.Add(ref, out); err != nil {
				log.Fatal(err)
			}
			if err := store.PutOutput(db, ref, out); err != nil {
				log.Fatal(err)
			}
		}

		fmt.Println("Genesis inserted")
	}

	// -------------------------------
	// 6) INIT WALLETS
	// -------------------------------
	aliceWallet := walletManager.GetWallet(aliceAddr, pool)
	bobWallet := walletManager.GetWallet(bobAddr, pool)

	fmt.Println("Alice spendable:", len(aliceWallet.SpendableOutputs(mp)))
	fmt.Println("Bob   spendable:", len(bobWallet.SpendableOutputs(mp)))

	// -------------------------------
	// 7) DEMO LOAD: BOB -> ALICE (1,000 TX)
	// -------------------------------
	fmt.Println("\n== Demo load: Bob -> Alice (1,000 txs) ==")

	for i := 0; i < 1000; i++ {
		tx, err := bobWallet.CreateTransaction(bobPriv, aliceAddr, 1, 1, mp)
		if err != nil {
			fmt.Printf("[tx %d] create failed: %v\n", i, err)
			break
		}

		if err := model.CheckStateless(tx); err != nil {
			fmt.Printf("[tx %d] stateless check failed: %v\n", i, err)
			break
		}

		if err := mp.Add(tx); err != nil {
			fmt.Printf("[tx %d] mempool add failed: %v\n", i, err)
			break
		}

		walletManager.ApplyUnconfirmedTx(tx)
	}

	fmt.Println("Mempool size after load:", mp.Size())

	// -------------------------------
	// 8) START EPOCH RUNNER
	// -------------------------------
	fmt.Println("\n== Starting epoch runner ==")
	runner := epoch.NewRunner(pool, mp, db, selector, nil)
	runner.Start()

	// -------------------------------
	// 9) LOOP
	// -------------------------------
	// the runner owns the pool from here on; only the mempool is safe to
	// read concurrently
	for {
		fmt.Println("[Tick]", "Mempool:", mp.Size())
		time.Sleep(2 * time.Second)
	}
}
