package smt

// merge combines a left and right child digest into their parent digest.
// Zero is the identity element: merging with a zero sibling returns the
// other side unchanged, which is what lets deletion be bit-exact-reversible
// and the resulting root independent of insertion order (spec.md §4.5,
// original_source/src/merge.rs::merge).
func merge(newHasher NewHasher, lhs, rhs Digest) Digest {
	if lhs.IsZero() {
		return rhs
	}
	if rhs.IsZero() {
		return lhs
	}
	h := newHasher()
	h.WriteBytes(lhs[:])
	h.WriteBytes(rhs[:])
	return h.Sum()
}

// hashLeaf computes the leaf digest binding key to value. Binding a key to
// the zero value is indistinguishable from the key being absent, so it
// returns the zero digest in that case (spec.md §4.5,
// original_source/src/merge.rs::hash_leaf).
func hashLeaf[V Value](newHasher NewHasher, key Key, value V) Digest {
	if value.ToDigest().IsZero() {
		return ZeroDigest
	}
	h := newHasher()
	h.WriteBytes(ZeroDigest[:])
	key.WriteBytes(h)
	valueDigest := value.ToDigest()
	h.WriteBytes(valueDigest[:])
	return h.Sum()
}
