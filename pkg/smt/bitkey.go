package smt

// BitKey is a 256-bit path through the tree: bit i (0 is least significant,
// 255 is most significant) lives in byte (31 - i/8) at in-byte position i%8.
// Keys are compared and walked bit-by-bit from the most significant bit down,
// matching original_source/src/key.rs's Key<N> convention with N fixed at 32.
type BitKey [32]byte

const bitKeyBits = 8 * 32

// maxBitIndex is the top bit index, bit 255.
const maxBitIndex = bitKeyBits - 1

func bytePos(i int) int {
	return 31 - i/8
}

// GetBit reports whether bit i of k is set.
func (k BitKey) GetBit(i int) bool {
	return k[bytePos(i)]>>(uint(i)%8)&1 != 0
}

// SetBit sets bit i of k.
func (k *BitKey) SetBit(i int) {
	k[bytePos(i)] |= 1 << (uint(i) % 8)
}

// ClearBit clears bit i of k.
func (k *BitKey) ClearBit(i int) {
	k[bytePos(i)] &^= 1 << (uint(i) % 8)
}

// IsZero reports whether every bit of k is zero.
func (k BitKey) IsZero() bool {
	return k == BitKey{}
}

// ForkHeight returns the highest bit index at which k and other differ,
// scanning from bit 255 down to bit 0; returns 0 if the keys are equal.
func (k BitKey) ForkHeight(other BitKey) int {
	for h := maxBitIndex; h >= 0; h-- {
		if k.GetBit(h) != other.GetBit(h) {
			return h
		}
	}
	return 0
}

// ParentPath returns the projection of k onto bits (height, 255], i.e. the
// path shared by every descendant of the branch node at height.
func (k BitKey) ParentPath(height int) BitKey {
	if height+1 >= bitKeyBits {
		return BitKey{}
	}
	return k.CopyBits(height+1, bitKeyBits)
}

// CopyBits returns a new BitKey containing only the bits of k in [start,end),
// all other bits zeroed.
func (k BitKey) CopyBits(start, end int) BitKey {
	var target BitKey
	if start < 0 {
		start = 0
	}
	if end > bitKeyBits {
		end = bitKeyBits
	}
	if start >= end {
		return target
	}
	for i := start; i < end; i++ {
		if k.GetBit(i) {
			target.SetBit(i)
		}
	}
	return target
}

// Digest reinterprets k as a Digest (they share representation: 32 bytes).
func (k BitKey) Digest() Digest {
	return Digest(k)
}

// BitKeyFromDigest reinterprets a Digest as a BitKey.
func BitKeyFromDigest(d Digest) BitKey {
	return BitKey(d)
}
