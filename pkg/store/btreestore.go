package store

import (
	"github.com/google/btree"

	"github.com/ethsmt/sparsemerkle/pkg/smt"
)

func bitKeyLess(a, b smt.BitKey) bool {
	for i := 0; i < 32; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// BTreeStore is a node store whose leaf keys are kept in an ordered
// github.com/google/btree index, so Validate's requirement to enumerate
// leaves in ascending BitKey order (spec.md §4.8) costs no extra sort pass,
// unlike MemStore.
type BTreeStore[V smt.Value] struct {
	branches map[smt.Digest]smt.BranchNode
	leaves   map[smt.BitKey]smt.LeafNode[V]
	order    *btree.BTreeG[smt.BitKey]
}

// NewBTreeStore builds an empty BTreeStore with the given btree degree (2-3
// tree fanout parameter; 32 is a reasonable default for in-memory use,
// matching typical github.com/google/btree callers).
func NewBTreeStore[V smt.Value](degree int) *BTreeStore[V] {
	if degree <= 0 {
		degree = 32
	}
	return &BTreeStore[V]{
		branches: make(map[smt.Digest]smt.BranchNode),
		leaves:   make(map[smt.BitKey]smt.LeafNode[V]),
		order:    btree.NewG(degree, bitKeyLess),
	}
}

func (s *BTreeStore[V]) GetBranch(node smt.Digest) (smt.BranchNode, bool, error) {
	b, ok := s.branches[node]
	return b, ok, nil
}

func (s *BTreeStore[V]) GetLeaf(leafKey smt.BitKey) (smt.LeafNode[V], bool, error) {
	l, ok := s.leaves[leafKey]
	return l, ok, nil
}

func (s *BTreeStore[V]) InsertBranch(node smt.Digest, branch smt.BranchNode) error {
	s.branches[node] = branch
	return nil
}

func (s *BTreeStore[V]) InsertLeaf(leafKey smt.BitKey, leaf smt.LeafNode[V]) error {
	if _, existed := s.leaves[leafKey]; !existed {
		s.order.ReplaceOrInsert(leafKey)
	}
	s.leaves[leafKey] = leaf
	return nil
}

func (s *BTreeStore[V]) RemoveBranch(node smt.Digest) error {
	delete(s.branches, node)
	return nil
}

func (s *BTreeStore[V]) RemoveLeaf(leafKey smt.BitKey) error {
	if _, existed := s.leaves[leafKey]; existed {
		s.order.Delete(leafKey)
	}
	delete(s.leaves, leafKey)
	return nil
}

// Leaves returns every stored leaf key in ascending BitKey order, read
// directly off the btree index without sorting.
func (s *BTreeStore[V]) Leaves() ([]smt.BitKey, error) {
	out := make([]smt.BitKey, 0, s.order.Len())
	s.order.Ascend(func(k smt.BitKey) bool {
		out = append(out, k)
		return true
	})
	return out, nil
}

// BranchesLen reports the number of stored branch nodes.
func (s *BTreeStore[V]) BranchesLen() int {
	return len(s.branches)
}

// LeavesLen reports the number of stored leaf nodes.
func (s *BTreeStore[V]) LeavesLen() int {
	return s.order.Len()
}
