package smtkey

import "github.com/ethsmt/sparsemerkle/pkg/smt"

// sentinelByte pads short keys so they do not collide, in BitKey space, with
// a longer key whose trailing bytes are zero. A short key still shares its
// path with a longer key whose extra trailing bytes are all 0xFF; 0xFF is an
// unlikely trailing byte for typical string/identifier keys.
const sentinelByte = 0xFF

// Sentinel is a byte slice right-padded with 0xFF to the tree's fixed
// 32-byte width, matching original_source/src/padded_key.rs's revision of
// PaddedKey (which renamed the zero-padding convention's overflow error to
// KeyTooLarge and switched the pad byte). Prefer Sentinel over Padded when
// keys are variable-length strings that might otherwise end in zero bytes.
type Sentinel struct {
	bytes  [32]byte
	length int
}

// NewSentinel builds a Sentinel key from b, which must be at most 32 bytes.
func NewSentinel(b []byte) (Sentinel, error) {
	if len(b) > 32 {
		return Sentinel{}, smt.ErrKeyTooLarge
	}
	var s Sentinel
	for i := range s.bytes {
		s.bytes[i] = sentinelByte
	}
	copy(s.bytes[:], b)
	s.length = len(b)
	return s, nil
}

// ToBitKey returns the full 0xFF-padded 32-byte path.
func (s Sentinel) ToBitKey() smt.BitKey {
	return smt.BitKey(s.bytes)
}

// WriteBytes absorbs the original, un-padded key bytes.
func (s Sentinel) WriteBytes(h smt.Hasher) {
	h.WriteBytes(s.bytes[:s.length])
}

// Bytes returns the original, un-padded key bytes.
func (s Sentinel) Bytes() []byte {
	return append([]byte{}, s.bytes[:s.length]...)
}
