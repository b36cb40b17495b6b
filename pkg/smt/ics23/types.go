// Package ics23 defines plain Go types mirroring the public ICS-23 protobuf
// wire schema used by the IBC ecosystem for inclusion/exclusion commitment
// proofs. These are data-transfer types only: no proto runtime is involved,
// since the tree's own proof representation (smt.MerkleProof) already covers
// verification — ics23 exists purely to shape the adapter's output to match
// the wire format a downstream ICS-23 verifier expects.
package ics23

// HashOp identifies a hash function by the ICS-23 enum values.
type HashOp int32

const (
	HashOp_NO_HASH HashOp = 0
	HashOp_SHA256  HashOp = 1
	HashOp_SHA512  HashOp = 2
	HashOp_KECCAK  HashOp = 3
	HashOp_RIPEMD160 HashOp = 4
	HashOp_BITCOIN HashOp = 5
	HashOp_BLAKE2B_256 HashOp = 7
)

// LengthOp identifies how a length prefix is (or isn't) applied before hashing.
type LengthOp int32

const (
	LengthOp_NO_PREFIX LengthOp = 0
	LengthOp_VAR_PROTO LengthOp = 1
)

// LeafOp describes how a single leaf is hashed into the tree.
type LeafOp struct {
	Hash         HashOp
	PrehashKey   HashOp
	PrehashValue HashOp
	Length       LengthOp
	Prefix       []byte
}

// InnerOp describes one step of combining a node with a sibling on the way
// to the root: Prefix/Suffix bracket the node's own bytes before hashing.
type InnerOp struct {
	Hash   HashOp
	Prefix []byte
	Suffix []byte
}

// InnerSpec constrains the shape every InnerOp in a proof must conform to.
type InnerSpec struct {
	ChildOrder      []int32
	ChildSize       int32
	MinPrefixLength int32
	MaxPrefixLength int32
	EmptyChild      []byte
	Hash            HashOp
}

// ProofSpec pins down every structural choice a verifier needs to check an
// ExistenceProof/NonExistenceProof without trusting the prover's shape.
type ProofSpec struct {
	LeafSpec                   *LeafOp
	InnerSpec                  *InnerSpec
	MaxDepth                   int32
	MinDepth                   int32
	PrehashKeyBeforeComparison bool
}

// ExistenceProof proves a (key, value) pair is present in the committed tree.
type ExistenceProof struct {
	Key   []byte
	Value []byte
	Leaf  *LeafOp
	Path  []*InnerOp
}

// NonExistenceProof proves key is absent, bracketed by the existence proofs
// of its in-order predecessor and successor leaves (either may be nil at the
// boundary of the key space).
type NonExistenceProof struct {
	Key   []byte
	Left  *ExistenceProof
	Right *ExistenceProof
}

// CommitmentProofKind discriminates the oneof CommitmentProof carries.
type CommitmentProofKind int

const (
	CommitmentProofExistence CommitmentProofKind = iota
	CommitmentProofNonExistence
)

// CommitmentProof is the top-level ICS-23 wire message: exactly one of
// Exist or Nonexist is populated, matching the protobuf oneof.
type CommitmentProof struct {
	Kind     CommitmentProofKind
	Exist    *ExistenceProof
	Nonexist *NonExistenceProof
}

// GetSpec returns the ProofSpec this adapter's proofs are shaped to, for a
// given hash function (spec.md §6, original_source/src/proof_ics23.rs
// get_spec/get_leaf_op/get_inner_spec).
func GetSpec(hashOp HashOp) ProofSpec {
	return ProofSpec{
		LeafSpec:                   &LeafOp{
			Hash:         hashOp,
			PrehashKey:   HashOp_NO_HASH,
			PrehashValue: HashOp_NO_HASH,
			Length:       LengthOp_NO_PREFIX,
			Prefix:       make([]byte, 32),
		},
		InnerSpec: &InnerSpec{
			ChildOrder:      []int32{0, 1},
			ChildSize:       32,
			MinPrefixLength: 0,
			MaxPrefixLength: 32,
			EmptyChild:      nil,
			Hash:            hashOp,
		},
		MaxDepth:                   256,
		MinDepth:                   0,
		PrehashKeyBeforeComparison: false,
	}
}
