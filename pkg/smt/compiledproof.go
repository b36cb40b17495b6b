package smt

// CompiledOpKind identifies one opcode in a compiled proof's per-leaf tape.
type CompiledOpKind uint8

const (
	// OpLeaf marks the start of a leaf's tape; it carries no sibling.
	OpLeaf CompiledOpKind = iota
	// OpSibling merges in an explicit, pre-resolved sibling digest.
	OpSibling
	// OpZeroSibling merges in the identity (zero) sibling — a branch-free
	// no-op at verification time, emitted so the tape never needs to
	// rediscover which heights were empty subtrees.
	OpZeroSibling
)

// CompiledOp is one instruction of a compiled proof tape.
type CompiledOp struct {
	Kind    CompiledOpKind
	Sibling Digest
}

// CompiledLeafTape is one queried leaf's fully pre-interleaved path to the
// root: OpLeaf followed by one op per height consumed, merges baked in so
// verification is a linear left-to-right fold (spec.md §4.9, "Compiled
// proof").
type CompiledLeafTape struct {
	Ops []CompiledOp
}

// CompiledMerkleProof is the pre-interleaved form of a MerkleProof: every
// decision ComputeRoot would otherwise rediscover from
// leavesPath/proof is baked into a flat opcode tape per leaf.
type CompiledMerkleProof struct {
	Leaves []CompiledLeafTape
}

type compileItem struct {
	key         BitKey
	height      int
	digest      Digest
	pathPos     int
	primaryLeaf int
	owners      []int
}

// Compile pre-interleaves mp against leaves, producing a CompiledMerkleProof
// that VerifyCompiled can check without replaying the FIFO schedule.
func Compile[V Value](newHasher NewHasher, mp *MerkleProof, leaves []LeafKV[V]) (*CompiledMerkleProof, error) {
	if len(leaves) != len(mp.leavesPath) {
		return nil, &IncorrectNumberOfLeavesError{Expected: len(mp.leavesPath), Actual: len(leaves)}
	}
	order, sortedKeys := sortLeafIndices(leaves)

	tapes := make([]CompiledLeafTape, len(leaves))
	items := make([]compileItem, len(order))
	for i, orig := range order {
		d := hashLeaf(newHasher, leaves[orig].Key, leaves[orig].Value)
		items[i] = compileItem{
			key:         sortedKeys[i],
			height:      0,
			digest:      d,
			pathPos:     0,
			primaryLeaf: i,
			owners:      []int{i},
		}
		tapes[i].Ops = append(tapes[i].Ops, CompiledOp{Kind: OpLeaf})
	}

	appendOp := func(owners []int, op CompiledOp) {
		for _, o := range owners {
			tapes[o].Ops = append(tapes[o].Ops, op)
		}
	}

	queue := items
	proofIdx := 0

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if (len(queue) == 0 && proofIdx == len(mp.proof)) || e.height == treeHeight {
			continue
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

			appendOp(e.owners, CompiledOp{Kind: OpSibling, Sibling: other.digest})
			appendOp(other.owners, CompiledOp{Kind: OpSibling, Sibling: e.digest})

			var parent Digest
			if isRight {
				parent = merge(newHasher, other.digest, e.digest)
			} else {
				parent = merge(newHasher, e.digest, other.digest)
			}
			e.digest = parent
			e.owners = append(append([]int{}, e.owners...), other.owners...)
			if path := mp.leavesPath[e.primaryLeaf]; e.pathPos < len(path) && path[e.pathPos] == e.height {
				e.pathPos++
			}
		} else {
			path := mp.leavesPath[e.primaryLeaf]
			if e.pathPos < len(path) && path[e.pathPos] == e.height {
				if proofIdx >= len(mp.proof) || mp.proof[proofIdx].Height != e.height {
					return nil, ErrCorruptedProof
				}
				sibling := mp.proof[proofIdx].Sibling
				proofIdx++
				e.pathPos++
				appendOp(e.owners, CompiledOp{Kind: OpSibling, Sibling: sibling})
				var parent Digest
				if isRight {
					parent = merge(newHasher, sibling, e.digest)
				} else {
					parent = merge(newHasher, e.digest, sibling)
				}
				e.digest = parent
			} else {
				appendOp(e.owners, CompiledOp{Kind: OpZeroSibling})
			}
		}

		if e.height < treeHeight {
			e.key = e.key.ParentPath(e.height)
			e.height++
			queue = append(queue, e)
		}
	}

	return &CompiledMerkleProof{Leaves: tapes}, nil
}

// VerifyCompiled replays each leaf's tape independently; every tape must
// fold to root for the proof to be accepted.
func VerifyCompiled[V Value](newHasher NewHasher, cp *CompiledMerkleProof, root Digest, leaves []LeafKV[V]) (bool, error) {
	if len(leaves) != len(cp.Leaves) {
		return false, &IncorrectNumberOfLeavesError{Expected: len(cp.Leaves), Actual: len(leaves)}
	}
	order, _ := sortLeafIndices(leaves)

	for i, orig := range order {
		tape := cp.Leaves[i]
		if len(tape.Ops) == 0 || tape.Ops[0].Kind != OpLeaf {
			return false, ErrCorruptedProof
		}
		digest := hashLeaf(newHasher, leaves[orig].Key, leaves[orig].Value)
		key := leaves[orig].Key.ToBitKey()
		for h, op := range tape.Ops[1:] {
			isRight := key.GetBit(h)
			switch op.Kind {
			case OpZeroSibling:
				// identity, digest unchanged
			case OpSibling:
				if isRight {
					digest = merge(newHasher, op.Sibling, digest)
				} else {
					digest = merge(newHasher, digest, op.Sibling)
				}
			default:
				return false, ErrCorruptedProof
			}
		}
		if digest != root {
			return false, nil
		}
	}
	return true, nil
}
