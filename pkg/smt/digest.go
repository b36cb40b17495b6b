package smt

import "encoding/hex"

// Digest is a 32-byte Merkle tree node hash: a branch digest, a leaf digest,
// or the root. The zero Digest is the identity element for merge and also
// represents "absent" for a leaf binding (spec.md §4.5).
type Digest [32]byte

// ZeroDigest is the all-zero identity/absence value.
var ZeroDigest = Digest{}

// IsZero reports whether d is the all-zero digest.
func (d Digest) IsZero() bool {
	return d == ZeroDigest
}

// Bytes returns d's bytes as a slice. The returned slice aliases d's backing
// array only when d is addressable; callers must not mutate it.
func (d Digest) Bytes() []byte {
	return d[:]
}

// DigestFromBytes copies up to 32 bytes of b into a new Digest, zero-padding
// on the right if b is shorter than 32 bytes and truncating if longer.
func DigestFromBytes(b []byte) Digest {
	var d Digest
	n := copy(d[:], b)
	_ = n
	return d
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ToDigest implements Value: a Digest is its own canonical value encoding,
// matching original_source/src/traits.rs's `impl Value for H256`.
func (d Digest) ToDigest() Digest {
	return d
}
