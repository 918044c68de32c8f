package model

import "fmt"

// Outpoint identifies one spendable output: the transaction that produced it
// and the position of the output inside that transaction.
type Outpoint struct {
	TxID  string `json:"txid"`
	Index int    `json:"index"`
}

// Key returns the canonical "txid:index" form used for storage keys.
func (o Outpoint) Key() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Index)
}
