package smt

import (
	"github.com/ethsmt/sparsemerkle/pkg/smt/ics23"
)

// convertExistence turns a single-leaf MerkleProof into an ICS-23
// ExistenceProof, walking leaves_path[0] and proof together and building one
// InnerOp per consumed entry (spec.md §4.10,
// original_source/src/proof_ics23.rs::convert). k is the original
// application key (its canonical bytes become ExistenceProof.Key); bit
// walking proceeds over its widened BitKey form.
func convertExistence(mp *MerkleProof, k Key, value Digest, hashOp ics23.HashOp) (*ics23.ExistenceProof, error) {
	mergeHeights := append([]int{}, mp.leavesPath[0]...)
	proof := append([]ProofStep{}, mp.proof...)

	curKey := k.ToBitKey()
	height := 0
	path := make([]*ics23.InnerOp, 0, len(proof))

	for len(proof) > 0 {
		if height == treeHeight {
			if len(proof) > 0 {
				return nil, ErrCorruptedProof
			}
			break
		}

		mergeHeight := height
		if len(mergeHeights) > 0 {
			mergeHeight = mergeHeights[0]
		}
		if height != mergeHeight {
			height = mergeHeight
			continue
		}

		step := proof[0]
		proof = proof[1:]
		if height < step.Height {
			height = step.Height
		}

		path = append(path, innerOp(hashOp, step.Sibling, curKey.GetBit(height)))

		if len(mergeHeights) > 0 {
			mergeHeights = mergeHeights[1:]
		}
		curKey = curKey.ParentPath(height)
		height++
	}

	return &ics23.ExistenceProof{
		Key:   append([]byte{}, k.Bytes()...),
		Value: append([]byte{}, value[:]...),
		Leaf:  leafOp(hashOp),
		Path:  path,
	}, nil
}

func leafOp(hashOp ics23.HashOp) *ics23.LeafOp {
	return &ics23.LeafOp{
		Hash:         hashOp,
		PrehashKey:   ics23.HashOp_NO_HASH,
		PrehashValue: ics23.HashOp_NO_HASH,
		Length:       ics23.LengthOp_NO_PREFIX,
		Prefix:       make([]byte, 32),
	}
}

// innerOp places the sibling in prefix when the current node is the right
// child (bit set) and in suffix otherwise (spec.md §4.10).
func innerOp(hashOp ics23.HashOp, sibling Digest, isRightNode bool) *ics23.InnerOp {
	node := append([]byte{}, sibling[:]...)
	if isRightNode {
		return &ics23.InnerOp{Hash: hashOp, Prefix: node, Suffix: nil}
	}
	return &ics23.InnerOp{Hash: hashOp, Prefix: nil, Suffix: node}
}

// MembershipProof builds an ICS-23 existence CommitmentProof for key.
// Returns ErrNonExistenceProof if key is absent.
func (t *Tree[V]) MembershipProof(k Key, hashOp ics23.HashOp) (*ics23.CommitmentProof, error) {
	value, err := t.Get(k)
	if err != nil {
		return nil, err
	}
	if value.ToDigest().IsZero() {
		return nil, ErrNonExistenceProof
	}
	mp, err := t.MerkleProof([]Key{k})
	if err != nil {
		return nil, err
	}
	existence, err := convertExistence(mp, k, value.ToDigest(), hashOp)
	if err != nil {
		return nil, err
	}
	return &ics23.CommitmentProof{Kind: ics23.CommitmentProofExistence, Exist: existence}, nil
}

// NonMembershipProof builds an ICS-23 non-existence CommitmentProof for key,
// bracketing it with existence proofs of its in-order predecessor and
// successor leaves. Returns ErrExistenceProof if key is present.
func (t *Tree[V]) NonMembershipProof(k Key, hashOp ics23.HashOp) (*ics23.CommitmentProof, error) {
	value, err := t.Get(k)
	if err != nil {
		return nil, err
	}
	if !value.ToDigest().IsZero() {
		return nil, ErrExistenceProof
	}

	key := k.ToBitKey()
	cache := newPathCache()
	if err := t.fetchMerklePath(key, cache); err != nil {
		return nil, err
	}

	var left, right *ics23.ExistenceProof
	for _, entry := range cache.sortedEntries() {
		branch, ok, err := t.store.GetBranch(entry.val)
		if err != nil {
			return nil, &StoreError{Op: "GetBranch", Err: err}
		}
		if !ok {
			return nil, ErrCorruptedProof
		}
		forkHeight := key.ForkHeight(branch.Key)
		isRight := key.GetBit(forkHeight)

		if isRight && left == nil {
			n := entry.val
			var leafKey BitKey
			for {
				b, ok, err := t.store.GetBranch(n)
				if err != nil {
					return nil, &StoreError{Op: "GetBranch", Err: err}
				}
				if !ok || b.ForkHeight == 0 {
					leafKey = b.Key
					break
				}
				leftNode, rightNode := b.Branch()
				if rightNode.IsZero() {
					n = leftNode
				} else {
					n = rightNode
				}
			}
			leaf, ok, err := t.store.GetLeaf(leafKey)
			if err != nil {
				return nil, &StoreError{Op: "GetLeaf", Err: err}
			}
			if !ok {
				return nil, ErrCorruptedProof
			}
			leafMP, err := t.MerkleProof([]Key{bitKeyOnlyKey{leaf.Key}})
			if err != nil {
				return nil, err
			}
			left, err = convertExistence(leafMP, bitKeyOnlyKey{leaf.Key}, leaf.Value.ToDigest(), hashOp)
			if err != nil {
				return nil, err
			}
		} else if !isRight && right == nil {
			n := entry.val
			var leafKey BitKey
			for {
				b, ok, err := t.store.GetBranch(n)
				if err != nil {
					return nil, &StoreError{Op: "GetBranch", Err: err}
				}
				if !ok || b.ForkHeight == 0 {
					leafKey = b.Key
					break
				}
				leftNode, rightNode := b.Branch()
				if leftNode.IsZero() {
					n = rightNode
				} else {
					n = leftNode
				}
			}
			leaf, ok, err := t.store.GetLeaf(leafKey)
			if err != nil {
				return nil, &StoreError{Op: "GetLeaf", Err: err}
			}
			if !ok {
				return nil, ErrCorruptedProof
			}
			leafMP, err := t.MerkleProof([]Key{bitKeyOnlyKey{leaf.Key}})
			if err != nil {
				return nil, err
			}
			right, err = convertExistence(leafMP, bitKeyOnlyKey{leaf.Key}, leaf.Value.ToDigest(), hashOp)
			if err != nil {
				return nil, err
			}
		}
		if left != nil && right != nil {
			break
		}
	}

	return &ics23.CommitmentProof{
		Kind: ics23.CommitmentProofNonExistence,
		Nonexist: &ics23.NonExistenceProof{
			Key:   append([]byte{}, key[:]...),
			Left:  left,
			Right: right,
		},
	}, nil
}
