package smt

import "sort"

// ProofStep is one entry of a Merkle proof's proof sequence: a sibling digest
// encountered at a given height, consumed bottom-up by the verifier.
type ProofStep struct {
	Sibling Digest
	Height  int
}

// MerkleProof is a compact multi-leaf inclusion proof: leavesPath[i] lists,
// in consumption order, the heights at which the i-th sorted leaf consumes a
// proof entry (or merges directly with another queried leaf sharing its
// subtree); proof is the flat, bottom-up sequence of non-zero sibling
// digests the leaves collectively consume (spec.md §4.9).
type MerkleProof struct {
	leavesPath [][]int
	proof      []ProofStep
}

// NewMerkleProof wraps an already-computed (leaves_path, proof) pair.
func NewMerkleProof(leavesPath [][]int, proof []ProofStep) *MerkleProof {
	return &MerkleProof{leavesPath: leavesPath, proof: proof}
}

// LeavesPath returns the proof's per-leaf consumption schedule.
func (mp *MerkleProof) LeavesPath() [][]int {
	return mp.leavesPath
}

// Proof returns the proof's flat sibling sequence.
func (mp *MerkleProof) Proof() []ProofStep {
	return mp.proof
}

// LeafKV pairs a queried key with its claimed value, the unit Verify and
// ComputeRoot operate over.
type LeafKV[V Value] struct {
	Key   Key
	Value V
}

type replayItem struct {
	key       BitKey
	height    int
	digest    Digest
	pathPos   int
	leafIndex int
}

func sortLeafIndices[V Value](leaves []LeafKV[V]) ([]int, []BitKey) {
	idx := make([]int, len(leaves))
	keys := make([]BitKey, len(leaves))
	for i, l := range leaves {
		idx[i] = i
		keys[i] = l.Key.ToBitKey()
	}
	sort.Slice(idx, func(a, b int) bool {
		return bitKeyLess(keys[idx[a]], keys[idx[b]])
	})
	sortedKeys := make([]BitKey, len(idx))
	for i, orig := range idx {
		sortedKeys[i] = keys[orig]
	}
	return idx, sortedKeys
}

// ComputeRoot recomputes the Merkle root implied by leaves and this proof.
func ComputeRoot[V Value](newHasher NewHasher, mp *MerkleProof, leaves []LeafKV[V]) (Digest, error) {
	if len(leaves) != len(mp.leavesPath) {
		return Digest{}, &IncorrectNumberOfLeavesError{Expected: len(mp.leavesPath), Actual: len(leaves)}
	}
	order, sortedKeys := sortLeafIndices(leaves)

	items := make([]replayItem, len(order))
	for i, orig := range order {
		items[i] = replayItem{
			key:       sortedKeys[i],
			height:    0,
			digest:    hashLeaf(newHasher, leaves[orig].Key, leaves[orig].Value),
			pathPos:   0,
			leafIndex: i,
		}
	}

	queue := items
	proofIdx := 0

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if (len(queue) == 0 && proofIdx == len(mp.proof)) || e.height == treeHeight {
			return e.digest, nil
		}

		siblingKey := e.key.ParentPath(e.height)
		isRight := e.key.GetBit(e.height)
		if isRight {
			siblingKey.ClearBit(e.height)
		} else {
			siblingKey.SetBit(e.height)
		}

		if len(queue) > 0 && queue[0].height == e.height && queue[0].key == siblingKey {
			other := queue[0]
			queue = queue[1:]
			var parent Digest
			if isRight {
				parent = merge(newHasher, other.digest, e.digest)
			} else {
				parent = merge(newHasher, e.digest, other.digest)
			}
			e.digest = parent
			if path := mp.leavesPath[e.leafIndex]; e.pathPos < len(path) && path[e.pathPos] == e.height {
				e.pathPos++
			}
		} else {
			path := mp.leavesPath[e.leafIndex]
			if e.pathPos < len(path) && path[e.pathPos] == e.height {
				if proofIdx >= len(mp.proof) || mp.proof[proofIdx].Height != e.height {
					return Digest{}, ErrCorruptedProof
				}
				sibling := mp.proof[proofIdx].Sibling
				proofIdx++
				e.pathPos++
				var parent Digest
				if isRight {
					parent = merge(newHasher, sibling, e.digest)
				} else {
					parent = merge(newHasher, e.digest, sibling)
				}
				e.digest = parent
			}
			// else: zero sibling, skip; digest unchanged.
		}

		if e.height < treeHeight {
			e.key = e.key.ParentPath(e.height)
			e.height++
			queue = append(queue, e)
		} else {
			return e.digest, nil
		}
	}
	return Digest{}, ErrCorruptedProof
}

// Verify reports whether leaves recompute to root under this proof.
func Verify[V Value](newHasher NewHasher, mp *MerkleProof, root Digest, leaves []LeafKV[V]) (bool, error) {
	got, err := ComputeRoot(newHasher, mp, leaves)
	if err != nil {
		return false, err
	}
	return got == root, nil
}
