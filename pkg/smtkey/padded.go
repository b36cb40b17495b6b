// Package smtkey implements the Key-mapping capability pkg/smt needs: ways
// to turn an application's own key bytes into the tree's fixed 256-bit
// BitKey path. Two conventions are provided, both grounded in
// original_source's key types: Padded (zero-padded, the canonical default)
// and Sentinel (0xFF-padded, for variable-length keys where zero-padding
// would make a short key collide with a longer key's zero suffix).
package smtkey

import "github.com/ethsmt/sparsemerkle/pkg/smt"

// Padded is a byte slice right-padded with zeros to the tree's fixed
// 32-byte width, matching original_source/src/key.rs's PaddedKey<N>. Two
// Padded keys of different logical length whose padded form happens to
// collide (e.g. one key's trailing bytes are already zero) map to the same
// tree path; WriteBytes still absorbs the un-padded logical bytes, so such
// keys hash to different leaf digests even when bound to the same Value.
type Padded struct {
	bytes  [32]byte
	length int
}

// NewPadded builds a Padded key from b, which must be at most 32 bytes.
func NewPadded(b []byte) (Padded, error) {
	if len(b) > 32 {
		return Padded{}, smt.ErrKeyTooLarge
	}
	var p Padded
	copy(p.bytes[:], b)
	p.length = len(b)
	return p, nil
}

// ToBitKey returns the full zero-padded 32-byte path.
func (p Padded) ToBitKey() smt.BitKey {
	return smt.BitKey(p.bytes)
}

// WriteBytes absorbs the original, un-padded key bytes — not the padding —
// so the leaf digest commits to the application's actual key, matching
// PaddedKey::as_slice()'s `&self.padded.0[..self.length]` in
// original_source/src/key.rs.
func (p Padded) WriteBytes(h smt.Hasher) {
	h.WriteBytes(p.bytes[:p.length])
}

// Bytes returns the original, un-padded key bytes.
func (p Padded) Bytes() []byte {
	return append([]byte{}, p.bytes[:p.length]...)
}
