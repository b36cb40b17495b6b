package smt

// MarshalDigestLeaf encodes a LeafNode[Digest] in the same Borsh-compatible
// layout as BranchNode.MarshalBinary. Value is generic at the Tree level, but
// a concrete codec can only be written against a concrete Value type; Digest
// is the value type used throughout spec.md's own examples (original_source's
// `impl Value for H256`), so it is the one persisted-state layout this
// repository ships (spec.md §6 names the layout optional).
func MarshalDigestLeaf(l LeafNode[Digest]) []byte {
	var out []byte
	borshWriteBytes(&out, l.Key[:])
	borshWriteBytes(&out, l.Value[:])
	return out
}

// UnmarshalDigestLeaf decodes the layout written by MarshalDigestLeaf.
func UnmarshalDigestLeaf(data []byte) (LeafNode[Digest], error) {
	var l LeafNode[Digest]
	key, rest, err := borshReadBytes(data)
	if err != nil {
		return l, err
	}
	if len(key) != 32 {
		return l, ErrInvalidData
	}
	copy(l.Key[:], key)

	val, _, err := borshReadBytes(rest)
	if err != nil {
		return l, err
	}
	if len(val) != 32 {
		return l, ErrInvalidData
	}
	copy(l.Value[:], val)
	return l, nil
}
