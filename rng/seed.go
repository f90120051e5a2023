package rng

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

// DeriveSubSeed splits a single scenario seed into an independent
// sub-stream keyed by label, so that sampling topology, bandwidth,
// mining, and block-size draws from uncorrelated generators even
// though they all trace back to one user-supplied seed.
func DeriveSubSeed(seed uint64, label string) uint64 {
	salt := make([]byte, 8)
	binary.BigEndian.PutUint64(salt, seed)
	derived := pbkdf2.Key([]byte(label), salt, 4096, 8, sha256.New)
	return binary.BigEndian.Uint64(derived)
}
