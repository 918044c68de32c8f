package model

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
)

// NewKeyPair returns an Ed25519 private key (64 bytes) and public key (32 bytes).
func NewKeyPair() (ed25519.PrivateKey, ed25519.PublicKey) {
	pub, priv, _ := ed25519.GenerateKey(rand.Reader)
	return priv, pub
}

// HashPubKey = RIPEMD160(SHA256(pubkey)), Bitcoin style.
func HashPubKey(pubkey []byte) []byte {
	sha := sha256.Sum256(pubkey)
	rip := ripemd160.New()
	_, _ = rip.Write(sha[:])
	return rip.Sum(nil)
}

func AddressFromPub(pub ed25519.PublicKey) string {
	return hex.EncodeToString(HashPubKey(pub))
}

// PrivToSeedHex encodes the 32-byte seed of a private key, the form keys
// travel in over transfer requests.
func PrivToSeedHex(priv ed25519.PrivateKey) string {
	return hex.EncodeToString(priv.Seed())
}

// PrivFromSeedHex recovers a private key from its hex seed.
func PrivFromSeedHex(seedHex string) (ed25519.PrivateKey, error) {
	b, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(b) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length: %d", len(b))
	}
	return ed25519.NewKeyFromSeed(b), nil
}
