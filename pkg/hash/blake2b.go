package hash

import (
	"hash"

	blake2b "github.com/minio/blake2b-simd"

	"github.com/ethsmt/sparsemerkle/pkg/smt"
	"github.com/ethsmt/sparsemerkle/pkg/smt/ics23"
)

// smtPersonalTag ("Smt") domain-separates this tree's blake2b instances,
// following the personalised Blake2bBuilder in original_source/src/lib.rs's
// doc example. This is true BLAKE2b
// personalization (the Person field of the parameter block, XORed into h0 at
// byte offset 48), not keying: golang.org/x/crypto/blake2b exposes only
// New256(key) and has no public way to set Person, so this package uses
// github.com/minio/blake2b-simd, whose Config carries Person directly.
var smtPersonalTag = []byte("Smt")

// Blake2bHasher implements smt.Hasher over github.com/minio/blake2b-simd,
// 256-bit output, personalized with smtPersonalTag.
type Blake2bHasher struct {
	h hash.Hash
}

// NewBlake2b constructs a fresh Blake2bHasher, suitable as an smt.NewHasher.
// It panics only if blake2b-simd rejects the fixed 3-byte Person tag, which
// cannot happen since it is well within the 16-byte PersonSize bound.
func NewBlake2b() smt.Hasher {
	h, err := blake2b.New(&blake2b.Config{Size: 32, Person: smtPersonalTag})
	if err != nil {
		panic(err)
	}
	return &Blake2bHasher{h: h}
}

func (b *Blake2bHasher) WriteBytes(data []byte) {
	b.h.Write(data)
}

func (b *Blake2bHasher) Sum() smt.Digest {
	return smt.DigestFromBytes(b.h.Sum(nil))
}

// Blake2bHashOp is the ICS-23 hash-op tag for Blake2bHasher.
func Blake2bHashOp() ics23.HashOp {
	return ics23.HashOp_BLAKE2B_256
}
