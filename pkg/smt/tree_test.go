package smt_test

import (
	"testing"

	"github.com/ethsmt/sparsemerkle/pkg/hash"
	"github.com/ethsmt/sparsemerkle/pkg/smt"
	"github.com/ethsmt/sparsemerkle/pkg/smtkey"
	"github.com/ethsmt/sparsemerkle/pkg/store"
)

func newTestTree(t *testing.T) *smt.Tree[smt.Digest] {
	t.Helper()
	return smt.NewEmpty[smt.Digest](store.NewMemStore[smt.Digest](), hash.NewSha256, smt.ZeroDigest)
}

func mustKey(t *testing.T, b []byte) smtkey.Padded {
	t.Helper()
	k, err := smtkey.NewPadded(b)
	if err != nil {
		t.Fatalf("NewPadded: %v", err)
	}
	return k
}

func valueOf(b byte) smt.Digest {
	var d smt.Digest
	d[31] = b
	return d
}

// TestEmptyTree covers seed scenario A: an empty tree's root is zero, get
// returns zero for any key, and a single-leaf proof of absence against the
// zero leaf verifies to a zero root.
func TestEmptyTree(t *testing.T) {
	tree := newTestTree(t)
	if !tree.Root().IsZero() {
		t.Fatalf("fresh tree root not zero: %x", tree.Root())
	}
	k := mustKey(t, []byte{0x01, 0x02})
	got, err := tree.Get(k)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.ToDigest().IsZero() {
		t.Fatalf("Get on empty tree returned non-zero value")
	}

	proof, err := tree.MerkleProof([]smt.Key{k})
	if err != nil {
		t.Fatalf("MerkleProof: %v", err)
	}
	root, err := smt.ComputeRoot(hash.NewSha256, proof, []smt.LeafKV[smt.Digest]{{Key: k, Value: smt.ZeroDigest}})
	if err != nil {
		t.Fatalf("ComputeRoot: %v", err)
	}
	if !root.IsZero() {
		t.Fatalf("empty-tree proof recomputed a non-zero root: %x", root)
	}
}

// TestSingleInsertThenDelete covers seed scenario B.
func TestSingleInsertThenDelete(t *testing.T) {
	tree := newTestTree(t)
	k := mustKey(t, []byte{0, 0, 0, 1})

	if _, err := tree.Update(k, valueOf(0x42)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if tree.Root().IsZero() {
		t.Fatalf("root is zero after inserting a non-zero value")
	}

	if _, err := tree.Update(k, smt.ZeroDigest); err != nil {
		t.Fatalf("Update(delete): %v", err)
	}
	if !tree.Root().IsZero() {
		t.Fatalf("root not zero after deleting the only key: %x", tree.Root())
	}
	ms := tree.Store().(*store.MemStore[smt.Digest])
	if ms.LeavesLen() != 0 || ms.BranchesLen() != 0 {
		t.Fatalf("store not empty after delete: leaves=%d branches=%d", ms.LeavesLen(), ms.BranchesLen())
	}
}

// TestZeroValueUpdateIsNoop covers property 2.
func TestZeroValueUpdateIsNoop(t *testing.T) {
	tree := newTestTree(t)
	k := mustKey(t, []byte{9, 9})
	root, err := tree.Update(k, smt.ZeroDigest)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !root.IsZero() {
		t.Fatalf("updating a fresh tree with zero produced a non-zero root")
	}
	ms := tree.Store().(*store.MemStore[smt.Digest])
	if ms.LeavesLen() != 0 || ms.BranchesLen() != 0 {
		t.Fatalf("updating with zero touched the store")
	}
}

// TestDeleteSymmetry covers property 3: update(k,v) then update(k,zero)
// returns the tree to bit-exactly its pre-insert state, even with other
// keys already present.
func TestDeleteSymmetry(t *testing.T) {
	tree := newTestTree(t)
	if _, err := tree.Update(mustKey(t, []byte{1}), valueOf(0x11)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := tree.Update(mustKey(t, []byte{2}), valueOf(0x22)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	baseline := tree.Root()
	ms := tree.Store().(*store.MemStore[smt.Digest])
	baselineLeaves, baselineBranches := ms.LeavesLen(), ms.BranchesLen()

	k3 := mustKey(t, []byte{3})
	if _, err := tree.Update(k3, valueOf(0x33)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := tree.Update(k3, smt.ZeroDigest); err != nil {
		t.Fatalf("Update(delete): %v", err)
	}

	if tree.Root() != baseline {
		t.Fatalf("root after insert+delete = %x, want %x", tree.Root(), baseline)
	}
	if ms.LeavesLen() != baselineLeaves || ms.BranchesLen() != baselineBranches {
		t.Fatalf("store size after insert+delete = (%d,%d), want (%d,%d)",
			ms.LeavesLen(), ms.BranchesLen(), baselineLeaves, baselineBranches)
	}
}

// TestGetAfterPut covers property 4.
func TestGetAfterPut(t *testing.T) {
	tree := newTestTree(t)
	pairs := []struct {
		k []byte
		v byte
	}{
		{[]byte{1}, 0xaa},
		{[]byte{2}, 0xbb},
		{[]byte{0x80, 0}, 0xcc},
		{[]byte{0x80, 1}, 0xdd},
	}
	for _, p := range pairs {
		if _, err := tree.Update(mustKey(t, p.k), valueOf(p.v)); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	for _, p := range pairs {
		got, err := tree.Get(mustKey(t, p.k))
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != valueOf(p.v) {
			t.Fatalf("Get(%v) = %x, want %x", p.k, got, valueOf(p.v))
		}
	}
}

// TestOrderIndependence covers property 1: the root depends only on the
// final multiset of bindings, not insertion order.
func TestOrderIndependence(t *testing.T) {
	kv := []struct {
		k []byte
		v byte
	}{
		{[]byte{1}, 0x01}, {[]byte{2}, 0x02}, {[]byte{3}, 0x03},
		{[]byte{0x80, 0}, 0x04}, {[]byte{0x80, 1}, 0x05},
		{[]byte{0x40}, 0x06}, {[]byte{0xff, 0xff}, 0x07},
	}
	orders := [][]int{
		{0, 1, 2, 3, 4, 5, 6},
		{6, 5, 4, 3, 2, 1, 0},
		{3, 0, 4, 1, 5, 2, 6},
	}
	var roots []smt.Digest
	for _, order := range orders {
		tree := newTestTree(t)
		for _, i := range order {
			if _, err := tree.Update(mustKey(t, kv[i].k), valueOf(kv[i].v)); err != nil {
				t.Fatalf("Update: %v", err)
			}
		}
		roots = append(roots, tree.Root())
	}
	for i := 1; i < len(roots); i++ {
		if roots[i] != roots[0] {
			t.Fatalf("order %v produced root %x, want %x (order %v)", orders[i], roots[i], roots[0], orders[0])
		}
	}
}

// TestValidateAgreesWithRoot covers property 9.
func TestValidateAgreesWithRoot(t *testing.T) {
	tree := newTestTree(t)
	for i := byte(0); i < 20; i++ {
		if _, err := tree.Update(mustKey(t, []byte{i, i}), valueOf(i+1)); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	// delete a few, re-insert one, to exercise a non-trivial history.
	if _, err := tree.Update(mustKey(t, []byte{5, 5}), smt.ZeroDigest); err != nil {
		t.Fatalf("Update(delete): %v", err)
	}
	if _, err := tree.Update(mustKey(t, []byte{5, 5}), valueOf(200)); err != nil {
		t.Fatalf("Update(reinsert): %v", err)
	}

	ok, err := tree.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatalf("Validate reported false for a consistent tree")
	}
}

func TestValidateEmptyTree(t *testing.T) {
	tree := newTestTree(t)
	ok, err := tree.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !ok {
		t.Fatalf("Validate reported false for an empty tree")
	}
}

// TestBlake2bQuickBrownFox covers seed scenario D: a known-answer vector
// over nine Blake2b-"Smt"-personalised leaves.
func TestBlake2bQuickBrownFox(t *testing.T) {
	words := []string{"The", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}
	tree := smt.NewEmpty[smt.Digest](store.NewMemStore[smt.Digest](), hash.NewBlake2b, smt.ZeroDigest)

	for i, word := range words {
		keyHasher := hash.NewBlake2b()
		var idx [4]byte
		idx[0] = byte(i)
		keyHasher.WriteBytes(idx[:])
		key := digestKey(keyHasher.Sum())

		valHasher := hash.NewBlake2b()
		valHasher.WriteBytes([]byte(word))
		value := valHasher.Sum()

		if _, err := tree.Update(key, value); err != nil {
			t.Fatalf("Update(%d,%q): %v", i, word, err)
		}
	}

	ms := tree.Store().(*store.MemStore[smt.Digest])
	if ms.LeavesLen() != 9 {
		t.Fatalf("leaves_map size = %d, want 9", ms.LeavesLen())
	}

	want := smt.DigestFromBytes([]byte{
		0x78, 0x34, 0xdb, 0x0d, 0xfb, 0x38, 0xc6, 0xd2, 0x6e, 0x7b, 0x6c, 0xcb, 0x61, 0x74, 0xf3, 0x9b,
		0xbc, 0x3d, 0x15, 0x8c, 0x19, 0x01, 0xa2, 0xcf, 0xa2, 0xe3, 0x88, 0x7b, 0x1d, 0xbd, 0x0b, 0x03,
	})
	if tree.Root() != want {
		t.Fatalf("root = %x, want %x", tree.Root(), want)
	}
}

// digestKey adapts a raw 32-byte Digest to the Key capability directly, for
// keys that are already exactly 32 bytes wide (no padding needed).
type digestKey smt.Digest

func (d digestKey) ToBitKey() smt.BitKey    { return smt.BitKey(d) }
func (d digestKey) WriteBytes(h smt.Hasher) { h.WriteBytes(d[:]) }
func (d digestKey) Bytes() []byte           { return append([]byte{}, d[:]...) }
