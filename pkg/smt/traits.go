package smt

import "github.com/ethsmt/sparsemerkle/pkg/smt/ics23"

// Hasher is the hash-function capability. Callers absorb bytes with
// WriteBytes and extract the digest once with Sum; a Hasher is single-use.
// Concrete hashers live in pkg/hash; HashOp identifies the hash function for
// the ICS-23 adapter and has no bearing on tree semantics.
type Hasher interface {
	WriteBytes(b []byte)
	Sum() Digest
}

// NewHasher constructs a fresh, single-use Hasher instance. Tree[V] calls this
// once per merge/hash_leaf invocation, mirroring H::default() in the original
// crate's generic bound.
type NewHasher func() Hasher

// Value is the value capability: a type storable in the tree must be able to
// fold itself into a Digest for hashing and must have a recognizable zero
// (absent) value.
type Value interface {
	ToDigest() Digest
}

// Key is the key-mapping capability: arbitrary application keys are mapped to
// a 256-bit tree path via ToBitKey, and absorbed into a Hasher the same way a
// value is, so custom key types can participate in hash_leaf without the core
// ever seeing their original representation (spec.md §4.3). Bytes returns the
// same canonical, unpadded byte form WriteBytes absorbs; it is what the
// ICS-23 adapter embeds in an ExistenceProof (spec.md §4.3's as_slice/to_vec).
type Key interface {
	ToBitKey() BitKey
	WriteBytes(h Hasher)
	Bytes() []byte
}

// Store is the node-store capability: the tree's only way to persist and
// retrieve branch and leaf nodes, keyed by the node digest (for branches) or
// the leaf's BitKey (for leaves). Concrete stores live in pkg/store.
type Store[V Value] interface {
	GetBranch(node Digest) (BranchNode, bool, error)
	GetLeaf(leafKey BitKey) (LeafNode[V], bool, error)
	InsertBranch(node Digest, branch BranchNode) error
	InsertLeaf(leafKey BitKey, leaf LeafNode[V]) error
	RemoveBranch(node Digest) error
	RemoveLeaf(leafKey BitKey) error
	// Leaves returns every stored leaf key in ascending BitKey order, used by
	// Validate (spec.md §4.8). A store that already keeps leaves sorted
	// (pkg/store.BTreeStore) can return this without an extra sort pass.
	Leaves() ([]BitKey, error)
}

// HashOp identifies the ICS-23 hash function tag for a concrete Hasher.
// It is an alias of ics23.HashOp, so callers can name the type through
// pkg/smt without importing pkg/smt/ics23.
type HashOp = ics23.HashOp
