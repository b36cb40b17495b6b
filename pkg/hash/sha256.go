// Package hash provides concrete Hasher capability implementations for
// pkg/smt. Concrete hash functions are explicitly out of the tree's core
// scope (spec.md §1); this package is the one place that scope is filled in.
package hash

import (
	"crypto/sha256"

	"github.com/ethsmt/sparsemerkle/pkg/smt"
	"github.com/ethsmt/sparsemerkle/pkg/smt/ics23"
)

// Sha256Hasher implements smt.Hasher over stdlib crypto/sha256, matching
// original_source/src/sha256.rs::Sha256Hasher. A fresh instance must be
// created per hash via NewSha256, matching the single-use Hasher contract.
type Sha256Hasher struct {
	buf []byte
}

// NewSha256 constructs a fresh Sha256Hasher, suitable as an smt.NewHasher.
func NewSha256() smt.Hasher {
	return &Sha256Hasher{}
}

func (s *Sha256Hasher) WriteBytes(b []byte) {
	s.buf = append(s.buf, b...)
}

func (s *Sha256Hasher) Sum() smt.Digest {
	return smt.Digest(sha256.Sum256(s.buf))
}

// Sha256HashOp is the ICS-23 hash-op tag for Sha256Hasher.
func Sha256HashOp() ics23.HashOp {
	return ics23.HashOp_SHA256
}
