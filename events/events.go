package events

// TxSubmitRequest carries a fully signed transaction for ingestion.
type TxSubmitRequest struct {
	TxID string `json:"txid"`
	Raw  []byte `json:"raw"` // serialized JSON transaction
}

// TransferRequest asks the node to build, sign and queue a transfer.
type TransferRequest struct {
	SeedHex  string `json:"seed_hex"`
	FromAddr string `json:"from_addr"`
	ToAddr   string `json:"to_addr"`
	Amount   int64  `json:"amount"`
	Fee      int64  `json:"fee"`
}

// EpochResult announces the outcome of one processed epoch.
type EpochResult struct {
	Accepted []string `json:"accepted"` // txids, in processing order
	Rejected int      `json:"rejected"`
	PoolSize int      `json:"pool_size"`
}
