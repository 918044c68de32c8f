package model

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"ledger/helper"

	"github.com/minio/sha256-simd"
)

type Transaction struct {
	Version  uint32   `json:"version"`
	Vin      []Input  `json:"vin"`
	Vout     []Output `json:"vout"`
	LockTime uint32   `json:"locktime"`

	Txid string `json:"txid"`
}

type Input struct {
	// Txid and Vout identify the output being spent.
	Txid string `json:"txid"`
	Vout int    `json:"vout"`
	// Sig and PubKey together are the authorization proof for this spend.
	Sig    []byte `json:"sig"`
	PubKey []byte `json:"pubkey"`
}

type Output struct {
	Value int64 `json:"value"`
	// Address is hex(RIPEMD160(SHA256(pubkey))) of the recipient's key.
	Address string `json:"address"`
}

// Outpoint returns the reference this input claims.
func (in *Input) Outpoint() Outpoint {
	return Outpoint{TxID: in.Txid, Index: in.Vout}
}

// Serialize encodes the full transaction, proofs included. This is the
// preimage of the transaction id.
func (tx *Transaction) Serialize() []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, tx.Version)

	helper.WriteVarInt(buf, uint64(len(tx.Vin)))
	for _, vin := range tx.Vin {
		prevBytes, _ := helper.HexToBytesFixed32(vin.Txid)
		buf.Write(helper.ReverseBytes(prevBytes))
		binary.Write(buf, binary.LittleEndian, uint32(vin.Vout))

		helper.WriteVarInt(buf, uint64(len(vin.Sig)))
		buf.Write(vin.Sig)
		helper.WriteVarInt(buf, uint64(len(vin.PubKey)))
		buf.Write(vin.PubKey)

		// sequence, constant
		binary.Write(buf, binary.LittleEndian, uint32(0xffffffff))
	}

	helper.WriteVarInt(buf, uint64(len(tx.Vout)))
	for _, vout := range tx.Vout {
		binary.Write(buf, binary.LittleEndian, uint64(vout.Value))
		addrBytes, _ := hex.DecodeString(vout.Address)
		helper.WriteVarInt(buf, uint64(len(addrBytes)))
		buf.Write(addrBytes)
	}

	binary.Write(buf, binary.LittleEndian, tx.LockTime)

	return buf.Bytes()
}

func (tx *Transaction) Size() int {
	return len(tx.Serialize())
}

func (tx *Transaction) ComputeTxID() string {
	raw := tx.Serialize()
	first := sha256.Sum256(raw)
	second := sha256.Sum256(first[:])
	return hex.EncodeToString(helper.ReverseBytes(second[:]))
}

// SignatureHash returns the payload the proof for input i is computed over.
// It covers the whole transaction (with all proofs cleared) plus the input
// index, so a proof cannot be replayed on a different transaction or moved
// to a different input position.
func (tx *Transaction) SignatureHash(i int) []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, tx.Version)

	helper.WriteVarInt(buf, uint64(len(tx.Vin)))
	for _, vin := range tx.Vin {
		prevBytes, _ := helper.HexToBytesFixed32(vin.Txid)
		buf.Write(helper.ReverseBytes(prevBytes))
		binary.Write(buf, binary.LittleEndian, uint32(vin.Vout))
	}

	helper.WriteVarInt(buf, uint64(len(tx.Vout)))
	for _, vout := range tx.Vout {
		binary.Write(buf, binary.LittleEndian, uint64(vout.Value))
		addrBytes, _ := hex.DecodeString(vout.Address)
		helper.WriteVarInt(buf, uint64(len(addrBytes)))
		buf.Write(addrBytes)
	}

	binary.Write(buf, binary.LittleEndian, tx.LockTime)
	binary.Write(buf, binary.LittleEndian, uint32(i))

	h1 := sha256.Sum256(buf.Bytes())
	h2 := sha256.Sum256(h1[:])
	return h2[:]
}

// Sign fills in the authorization proof for every input and then fixes the
// transaction id. The signer must own every referenced output.
func (tx *Transaction) Sign(priv ed25519.PrivateKey) error {
	if len(tx.Vin) == 0 {
		return errors.New("no inputs to sign")
	}

	pub := priv.Public().(ed25519.PublicKey)

	for i := range tx.Vin {
		sighash := tx.SignatureHash(i)
		tx.Vin[i].Sig = ed25519.Sign(priv, sighash)
		tx.Vin[i].PubKey = append([]byte(nil), pub...)
	}

	tx.Txid = tx.ComputeTxID()
	return nil
}

// CheckStateless runs the checks that need no pool: the id matches the
// content, no outpoint is claimed twice, and no output value is negative.
// Used by ingestion before a candidate is queued for an epoch.
func CheckStateless(tx *Transaction) error {
	if len(tx.Vin) == 0 || len(tx.Vout) == 0 {
		return errors.New("empty vin or vout")
	}
	if tx.Txid != tx.ComputeTxID() {
		return errors.New("txid does not match content")
	}
	seen := make(map[Outpoint]struct{}, len(tx.Vin))
	for i := range tx.Vin {
		ref := tx.Vin[i].Outpoint()
		if _, dup := seen[ref]; dup {
			return fmt.Errorf("duplicate input %s", ref.Key())
		}
		seen[ref] = struct{}{}
	}
	for _, out := range tx.Vout {
		if out.Value < 0 {
			return fmt.Errorf("negative output value %d", out.Value)
		}
	}
	return nil
}
