package model

import "crypto/ed25519"

// Verifier decides whether an authorization proof over a payload is valid
// for the owner of a spent output. Implementations must be pure functions
// of their arguments.
type Verifier interface {
	Verify(owner string, payload, sig, pub []byte) bool
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(owner string, payload, sig, pub []byte) bool

func (f VerifierFunc) Verify(owner string, payload, sig, pub []byte) bool {
	return f(owner, payload, sig, pub)
}

// Ed25519Verifier accepts a proof when the presented pubkey hashes to the
// owner address and the Ed25519 signature verifies over the payload.
type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(owner string, payload, sig, pub []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	if AddressFromPub(pub) != owner {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), payload, sig)
}
