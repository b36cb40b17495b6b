package smt

import (
	"encoding/binary"
	"fmt"
)

// BranchNode is an internal tree node. It spans bits (fork_height, parent
// fork height] of the shared path "key", and merges two children: the side
// determined by key.GetBit(fork_height) is "node", the other is "sibling".
// A leaf always carries a synthetic self-branch alongside it with
// fork_height 0 and sibling zero, so Get can terminate uniformly on a branch
// (spec.md §4.2, invariant 3; original_source/src/tree.rs BranchNode<N>).
type BranchNode struct {
	ForkHeight int
	Key        BitKey
	Node       Digest
	Sibling    Digest
}

// Branch returns (left, right) ordered by the bit of Key at ForkHeight: the
// branch that continues toward Node is placed on the side Key actually takes.
func (b BranchNode) Branch() (left, right Digest) {
	if b.Key.GetBit(b.ForkHeight) {
		return b.Sibling, b.Node
	}
	return b.Node, b.Sibling
}

// LeafNode is a terminal tree node binding a full-width key to a value.
type LeafNode[V Value] struct {
	Key   BitKey
	Value V
}

// borshWriteBytes writes a Borsh-style u32 little-endian length prefix followed
// by raw bytes (spec.md §6's optional persisted-state layout).
func borshWriteBytes(buf *[]byte, b []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	*buf = append(*buf, lenBuf[:]...)
	*buf = append(*buf, b...)
}

func borshReadBytes(b []byte) (data []byte, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, ErrInvalidData
	}
	n := binary.LittleEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(n) {
		return nil, nil, ErrInvalidData
	}
	return b[:n], b[n:], nil
}

// MarshalBinary encodes b in the Borsh-compatible layout: fork_height as 8
// little-endian bytes with no length prefix (Borsh's fixed-width integer
// convention), then key, node, sibling each as length-prefixed 32-byte fields.
func (b BranchNode) MarshalBinary() ([]byte, error) {
	var out []byte
	var h [8]byte
	binary.LittleEndian.PutUint64(h[:], uint64(b.ForkHeight))
	out = append(out, h[:]...)
	borshWriteBytes(&out, b.Key[:])
	borshWriteBytes(&out, b.Node[:])
	borshWriteBytes(&out, b.Sibling[:])
	return out, nil
}

// UnmarshalBinary decodes the layout written by MarshalBinary, rejecting any
// key/node/sibling field whose decoded length isn't exactly 32 bytes.
func (b *BranchNode) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return ErrInvalidData
	}
	b.ForkHeight = int(binary.LittleEndian.Uint64(data[:8]))
	rest := data[8:]

	key, rest, err := borshReadBytes(rest)
	if err != nil {
		return err
	}
	if len(key) != 32 {
		return fmt.Errorf("%w: key field length %d", ErrInvalidData, len(key))
	}
	copy(b.Key[:], key)

	node, rest, err := borshReadBytes(rest)
	if err != nil {
		return err
	}
	if len(node) != 32 {
		return fmt.Errorf("%w: node field length %d", ErrInvalidData, len(node))
	}
	copy(b.Node[:], node)

	sib, _, err := borshReadBytes(rest)
	if err != nil {
		return err
	}
	if len(sib) != 32 {
		return fmt.Errorf("%w: sibling field length %d", ErrInvalidData, len(sib))
	}
	copy(b.Sibling[:], sib)
	return nil
}
