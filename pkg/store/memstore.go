// Package store provides concrete Store capability implementations for
// pkg/smt: MemStore (an unordered map, the spec's default) and BTreeStore
// (an ordered store backed by github.com/google/btree).
package store

import (
	"sort"

	"github.com/ethsmt/sparsemerkle/pkg/smt"
)

// MemStore is the default node store: two plain Go maps, one for branches
// keyed by node digest and one for leaves keyed by BitKey, matching
// original_source/src/default_store.rs::DefaultStore (whose `Map` alias
// chooses a HashMap under the std feature).
type MemStore[V smt.Value] struct {
	branches map[smt.Digest]smt.BranchNode
	leaves   map[smt.BitKey]smt.LeafNode[V]
}

// NewMemStore builds an empty MemStore.
func NewMemStore[V smt.Value]() *MemStore[V] {
	return &MemStore[V]{
		branches: make(map[smt.Digest]smt.BranchNode),
		leaves:   make(map[smt.BitKey]smt.LeafNode[V]),
	}
}

func (s *MemStore[V]) GetBranch(node smt.Digest) (smt.BranchNode, bool, error) {
	b, ok := s.branches[node]
	return b, ok, nil
}

func (s *MemStore[V]) GetLeaf(leafKey smt.BitKey) (smt.LeafNode[V], bool, error) {
	l, ok := s.leaves[leafKey]
	return l, ok, nil
}

func (s *MemStore[V]) InsertBranch(node smt.Digest, branch smt.BranchNode) error {
	s.branches[node] = branch
	return nil
}

func (s *MemStore[V]) InsertLeaf(leafKey smt.BitKey, leaf smt.LeafNode[V]) error {
	s.leaves[leafKey] = leaf
	return nil
}

func (s *MemStore[V]) RemoveBranch(node smt.Digest) error {
	delete(s.branches, node)
	return nil
}

func (s *MemStore[V]) RemoveLeaf(leafKey smt.BitKey) error {
	delete(s.leaves, leafKey)
	return nil
}

// Leaves returns every stored leaf key in ascending BitKey order. MemStore
// keeps no ordering internally, so this sorts on every call; BTreeStore
// avoids that cost by constuction.
func (s *MemStore[V]) Leaves() ([]smt.BitKey, error) {
	out := make([]smt.BitKey, 0, len(s.leaves))
	for k := range s.leaves {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		for b := 0; b < 32; b++ {
			if out[i][b] != out[j][b] {
				return out[i][b] < out[j][b]
			}
		}
		return false
	})
	return out, nil
}

// BranchesLen reports the number of stored branch nodes, matching the
// teacher's test style of asserting on store size
// (original_source/src/tests.rs's `branches_map().len()`).
func (s *MemStore[V]) BranchesLen() int {
	return len(s.branches)
}

// LeavesLen reports the number of stored leaf nodes.
func (s *MemStore[V]) LeavesLen() int {
	return len(s.leaves)
}
